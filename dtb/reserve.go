package dtb

import (
	"fmt"
	"io"

	"github.com/joshuapare/dtbkit/internal/buf"
	"github.com/joshuapare/dtbkit/internal/format"
)

// ReserveEntry is one memory reservation range: a physical region the
// operating system must leave untouched. Entries are produced transiently
// during iteration and never stored.
type ReserveEntry struct {
	Address uint64
	Size    uint64
}

// ReserveIter iterates the memory reservation block lazily. The sequence is
// restartable: a fresh iterator from ReservedEntries always starts over.
type ReserveIter struct {
	t    *Tree
	off  int
	done bool
}

// ReservedEntries returns an iterator over the memory reservation block.
func (t *Tree) ReservedEntries() *ReserveIter {
	return &ReserveIter{t: t, off: t.ReserveOffset()}
}

// Next returns the next reservation entry or io.EOF at the all-zero
// terminator. A reservation block that runs into the struct block without a
// terminator yields an ErrTruncated-wrapped error: malformed blobs must not
// cause unbounded scanning into adjacent sections.
func (it *ReserveIter) Next() (ReserveEntry, error) {
	if it.done {
		return ReserveEntry{}, io.EOF
	}

	// Entries may legitimately occupy everything up to the struct block.
	// The reservation block carries no size field of its own, so the next
	// section's start is the hard limit.
	limit := it.t.TotalSize()
	if so := it.t.StructOffset(); so >= it.t.ReserveOffset() && so < limit {
		limit = so
	}

	end, err := buf.CheckListBounds(limit, it.off, 1, format.ReserveEntrySize)
	if err != nil {
		it.done = true
		return ReserveEntry{}, fmt.Errorf("dtb: reservation block missing terminator: %w",
			ErrTruncated)
	}

	addr, _ := buf.U64BEAt(it.t.data, it.off)
	size, _ := buf.U64BEAt(it.t.data, it.off+8)
	if addr == 0 && size == 0 {
		it.done = true
		return ReserveEntry{}, io.EOF
	}

	it.off = end
	return ReserveEntry{Address: addr, Size: size}, nil
}
