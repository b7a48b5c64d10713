package dtb

import (
	"fmt"

	"github.com/joshuapare/dtbkit/internal/format"
)

// Options controls optional capabilities of a Tree.
type Options struct {
	// EnableAlloc permits convenience helpers that build heap structures
	// (Prop.StrList, Tree.NodePath). Core traversal behaves identically with
	// or without it; the default keeps O(1) auxiliary memory per step.
	EnableAlloc bool
}

// Tree is a validated, read-only handle over a device tree blob. It borrows
// the byte buffer it was constructed from and never mutates it; all cursors
// derived from the Tree stay valid exactly as long as that buffer does.
type Tree struct {
	data []byte
	hdr  format.Header
	opts Options
}

// PeekTotalSize reads only the magic and total-size header fields from b and
// returns the declared size of the blob. The buffer needs just 8 bytes, which
// supports copy-from-flash workflows: read a fixed prefix, learn the real
// size, then fetch an exact-size buffer for NewTree. For every valid blob the
// result equals Tree.TotalSize after a full parse.
func PeekTotalSize(b []byte) (int, error) {
	size, err := format.PeekTotalSize(b)
	if err != nil {
		return 0, err
	}
	return int(size), nil
}

// NewTree constructs a Tree over data with default options.
//
// This is the package's trusted-input entry point: the caller asserts that
// data is a complete blob of at least the declared total size, at 4-byte
// alignment. NewTree validates the magic number, the version window, and that
// every declared block offset/size is self-consistent and in bounds; it
// cannot verify that the backing memory genuinely holds a device tree.
func NewTree(data []byte) (*Tree, error) {
	return NewTreeWith(data, Options{})
}

// NewTreeWith is NewTree with explicit Options.
func NewTreeWith(data []byte, opts Options) (*Tree, error) {
	hdr, err := format.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	// Trailing bytes beyond the declared size are ignored; every bounds
	// check below operates on the declared extent only.
	return &Tree{
		data: data[:hdr.TotalSize],
		hdr:  hdr,
		opts: opts,
	}, nil
}

// Bytes returns the blob, trimmed to the declared total size.
func (t *Tree) Bytes() []byte { return t.data }

// TotalSize returns the declared size of the blob in bytes.
func (t *Tree) TotalSize() int { return int(t.hdr.TotalSize) }

// StructOffset returns the offset of the struct block.
func (t *Tree) StructOffset() int { return int(t.hdr.OffDTStruct) }

// StructSize returns the size of the struct block in bytes.
func (t *Tree) StructSize() int { return int(t.hdr.SizeDTStruct) }

// StringsOffset returns the offset of the strings block.
func (t *Tree) StringsOffset() int { return int(t.hdr.OffDTStrings) }

// StringsSize returns the size of the strings block in bytes.
func (t *Tree) StringsSize() int { return int(t.hdr.SizeDTStrings) }

// ReserveOffset returns the offset of the memory reservation block.
func (t *Tree) ReserveOffset() int { return int(t.hdr.OffMemRsvmap) }

// Version returns the blob format version.
func (t *Tree) Version() uint32 { return t.hdr.Version }

// LastCompVersion returns the oldest version the blob declares itself
// backward compatible with.
func (t *Tree) LastCompVersion() uint32 { return t.hdr.LastCompVersion }

// BootCPU returns the physical id of the booting CPU.
func (t *Tree) BootCPU() uint32 { return t.hdr.BootCPUIDPhys }

// structEnd returns the first offset past the struct block.
func (t *Tree) structEnd() int {
	return int(t.hdr.OffDTStruct) + int(t.hdr.SizeDTStruct)
}

// Root returns the root node of the tree.
func (t *Tree) Root() (Node, error) {
	n, err := t.Nodes().Next()
	if err != nil {
		return Node{}, fmt.Errorf("dtb: no root node: %w", err)
	}
	return n, nil
}
