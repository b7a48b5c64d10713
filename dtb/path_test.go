package dtb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeAtPath(t *testing.T) {
	tree := testTree(t)

	n, err := tree.NodeAtPath("/soc/uart@10000000")
	require.NoError(t, err)
	name, err := n.Name()
	require.NoError(t, err)
	require.Equal(t, "uart@10000000", name)
	require.Equal(t, 2, n.Depth())
}

func TestNodeAtPathRoot(t *testing.T) {
	tree := testTree(t)
	root, err := tree.Root()
	require.NoError(t, err)

	for _, p := range []string{"/", "", "//"} {
		n, err := tree.NodeAtPath(p)
		require.NoError(t, err, "path %q", p)
		require.Equal(t, root.Offset(), n.Offset())
	}
}

// A component without a unit address matches the first child whose base name
// agrees, in on-disk order.
func TestNodeAtPathBaseNameMatch(t *testing.T) {
	tree := testTree(t)

	n, err := tree.NodeAtPath("/soc/uart")
	require.NoError(t, err)
	name, err := n.Name()
	require.NoError(t, err)
	require.Equal(t, "uart@10000000", name)

	n, err = tree.NodeAtPath("/soc/intc")
	require.NoError(t, err)
	name, err = n.Name()
	require.NoError(t, err)
	require.Equal(t, "intc@c000000", name)
}

// A component with a unit address never falls back to base-name matching.
func TestNodeAtPathExactUnitAddress(t *testing.T) {
	tree := testTree(t)

	_, err := tree.NodeAtPath("/soc/uart@99999999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNodeAtPathNotFound(t *testing.T) {
	tree := testTree(t)

	_, err := tree.NodeAtPath("/nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = tree.NodeAtPath("/soc/uart@10000000/nope")
	require.ErrorIs(t, err, ErrNotFound)
}
