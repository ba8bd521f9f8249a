package inspect

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllCollectionsMatchCounts(t *testing.T) {
	all := AllCollections()
	assert.True(t, sort.SliceIsSorted(all, func(i, j int) bool { return all[i] < all[j] }))

	counts := testProject().Counts()
	assert.Len(t, all, len(counts))
	for _, c := range all {
		_, ok := counts[string(c)]
		assert.True(t, ok, "no count for %s", c)
	}
}

func TestResolveCollection(t *testing.T) {
	for alias, want := range collectionAliases {
		got, ok := ResolveCollection(alias)
		assert.True(t, ok, alias)
		assert.Equal(t, want, got)
	}

	got, ok := ResolveCollection("MASKVERSIONS")
	assert.True(t, ok)
	assert.Equal(t, MaskVersions, got)

	_, ok = ResolveCollection("nope")
	assert.False(t, ok)
}
