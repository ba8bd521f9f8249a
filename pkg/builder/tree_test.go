package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	name     string
	children []*node
}

func newNodeTree() (*depthTree[node], *[]*node) {
	roots := []*node{}
	return newDepthTree(&roots, func(n *node) *[]*node { return &n.children }), &roots
}

func TestDepthTreeCurrent(t *testing.T) {
	tree, roots := newNodeTree()

	cur, err := tree.current()
	require.NoError(t, err)
	assert.Nil(t, cur)

	require.NoError(t, tree.open(&node{name: "a"}))
	require.NoError(t, tree.open(&node{name: "b"}))
	cur, err = tree.current()
	require.NoError(t, err)
	assert.Equal(t, "b", cur.name)

	require.NoError(t, tree.close())
	require.NoError(t, tree.open(&node{name: "c"}))
	cur, err = tree.current()
	require.NoError(t, err)
	assert.Equal(t, "c", cur.name)

	require.Len(t, *roots, 1)
	assert.Len(t, (*roots)[0].children, 2)
}

func TestDepthTreeUnderflow(t *testing.T) {
	tree, _ := newNodeTree()

	assert.ErrorIs(t, tree.close(), ErrDepthUnderflow)
	assert.Equal(t, 0, tree.depth)
}

func TestDepthTreeMissingNode(t *testing.T) {
	tree, roots := newNodeTree()
	require.NoError(t, tree.open(&node{name: "a"}))

	// Removing nodes behind the counter's back leaves nothing to descend into.
	*roots = (*roots)[:0]

	_, err := tree.current()
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.ErrorIs(t, tree.open(&node{name: "b"}), ErrPrecondition)
}

func TestDepthTreeOpenRoot(t *testing.T) {
	tree, roots := newNodeTree()

	require.NoError(t, tree.open(&node{name: "a"}))
	tree.openRoot(&node{name: "b"})

	assert.Equal(t, 2, tree.depth)
	assert.Len(t, *roots, 2)
}
