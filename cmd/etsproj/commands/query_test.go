package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advancedknx/ets-proj-parser/pkg/inspect"
)

func TestParseValue(t *testing.T) {
	assert.Equal(t, float64(257), ParseValue("257"))
	assert.Equal(t, true, ParseValue("true"))
	assert.Equal(t, "Kitchen", ParseValue("Kitchen"))
	assert.Equal(t, "quoted", ParseValue(`"quoted"`))
	assert.Nil(t, ParseValue("null"))
}

func TestQuery(t *testing.T) {
	p, err := LoadExport(writeExport(t, "home.json"))
	require.NoError(t, err)

	t.Run("collection", func(t *testing.T) {
		items, err := Query(p, QueryOptions{Collection: "devices"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("by key", func(t *testing.T) {
		items, err := Query(p, QueryOptions{Collection: "ga", Key: "address", Value: "257"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		id, err := Query(p, QueryOptions{Collection: "ga", Key: "address", Value: "257", Field: "id"})
		require.NoError(t, err)
		assert.Equal(t, []any{"GA-1"}, id)
	})

	t.Run("nested key", func(t *testing.T) {
		items, err := Query(p, QueryOptions{Collection: "devices", Key: "programmingStatus.parametersLoaded", Value: "true", Field: "name"})
		require.NoError(t, err)
		assert.Equal(t, []any{"Switch"}, items)
	})

	t.Run("where", func(t *testing.T) {
		items, err := Query(p, QueryOptions{Collection: "groupAddresses", Where: "central", Field: "name"})
		require.NoError(t, err)
		assert.Equal(t, []any{"Central off"}, items)
	})

	t.Run("unknown collection", func(t *testing.T) {
		_, err := Query(p, QueryOptions{Collection: "bogus"})
		assert.True(t, errors.Is(err, inspect.ErrUnknownCollection))
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := Query(p, QueryOptions{Collection: "devices", Where: "name =="})
		assert.Error(t, err)
	})
}

func TestRunQueryWritesJSON(t *testing.T) {
	path := writeExport(t, "home.json")

	var buf bytes.Buffer
	require.NoError(t, RunQuery(path, QueryOptions{Collection: "devices", Field: "address"}, &buf))

	var got []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.ElementsMatch(t, []string{"1.1.1", "1.1.2"}, got)

	// No matches print an empty array, not null
	buf.Reset()
	require.NoError(t, RunQuery(path, QueryOptions{Collection: "devices", Key: "name", Value: "Nope"}, &buf))
	assert.JSONEq(t, "[]", buf.String())
}
