package dtb

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReservedEntries(t *testing.T) {
	blob := newBlob().
		reserve(0x80000000, 0x10000).
		reserve(0xfe000000, 0x2000).
		beginNode("").
		endNode().
		build(t)
	tree, err := NewTree(blob)
	require.NoError(t, err)

	it := tree.ReservedEntries()

	e, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, ReserveEntry{Address: 0x80000000, Size: 0x10000}, e)

	e, err = it.Next()
	require.NoError(t, err)
	require.Equal(t, ReserveEntry{Address: 0xfe000000, Size: 0x2000}, e)

	_, err = it.Next()
	require.ErrorIs(t, err, io.EOF)
	_, err = it.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReservedEntriesSingle(t *testing.T) {
	tree := testTree(t)

	it := tree.ReservedEntries()
	e, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, uint64(0x80000000), e.Address)

	_, err = it.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReservedEntriesRestartable(t *testing.T) {
	tree := testTree(t)

	for i := 0; i < 2; i++ {
		it := tree.ReservedEntries()
		_, err := it.Next()
		require.NoError(t, err)
		_, err = it.Next()
		require.ErrorIs(t, err, io.EOF)
	}
}

// Without the all-zero terminator the iterator must stop at the struct block
// boundary with an error rather than scan into it.
func TestReservedEntriesMissingTerminator(t *testing.T) {
	b := newBlob().
		reserve(0x80000000, 0x10000).
		beginNode("").
		endNode()
	b.noTerminator = true
	tree, err := NewTree(b.build(t))
	require.NoError(t, err)

	it := tree.ReservedEntries()
	_, err = it.Next()
	require.NoError(t, err)
	_, err = it.Next()
	require.ErrorIs(t, err, ErrTruncated)
}
