package format

import (
	"fmt"

	"github.com/joshuapare/dtbkit/internal/buf"
)

// Header captures the fdt_header fields of a device tree blob. The diagram
// below shows the on-disk layout; every field is a big-endian uint32.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    Magic (0xd00dfeed)
//	 0x04    4    Total size of the blob in bytes
//	 0x08    4    Offset of the struct block
//	 0x0C    4    Offset of the strings block
//	 0x10    4    Offset of the memory reservation block
//	 0x14    4    Blob format version
//	 0x18    4    Oldest version this blob is backward compatible with
//	 0x1C    4    Physical CPU id of the booting CPU
//	 0x20    4    Size of the strings block
//	 0x24    4    Size of the struct block
type Header struct {
	Magic           uint32
	TotalSize       uint32
	OffDTStruct     uint32
	OffDTStrings    uint32
	OffMemRsvmap    uint32
	Version         uint32
	LastCompVersion uint32
	BootCPUIDPhys   uint32
	SizeDTStrings   uint32
	SizeDTStruct    uint32
}

// PeekTotalSize verifies the magic number and returns the declared total size
// of the blob without parsing the rest of the header. The buffer only needs to
// hold the first two header fields, which lets a caller read a fixed-size
// prefix from flash, learn the real size, and then fetch an exact-size buffer
// for ParseHeader.
func PeekTotalSize(b []byte) (uint32, error) {
	magic, ok := buf.U32BEAt(b, MagicOffset)
	if !ok {
		return 0, fmt.Errorf("fdt header: %w", ErrTruncated)
	}
	if magic != Magic {
		return 0, fmt.Errorf("fdt header: %w (0x%08x)", ErrBadMagic, magic)
	}
	size, ok := buf.U32BEAt(b, TotalSizeOffset)
	if !ok {
		return 0, fmt.Errorf("fdt header: %w", ErrTruncated)
	}
	return size, nil
}

// ParseHeader validates and extracts the fdt_header from b.
//
// Beyond decoding the fields it checks internal self-consistency of the
// declared layout: the version window overlaps what this decoder supports,
// every block offset/size pair lies inside the declared total size, no block
// collides with the header region, and the struct and reservation blocks sit
// on their required alignment. It cannot check that the backing memory really
// contains a device tree; that is the caller's contract.
func ParseHeader(b []byte) (Header, error) {
	// Magic is verified before the length so that a buffer that is both short
	// and not a device tree reports the same error here and in PeekTotalSize.
	magic, ok := buf.U32BEAt(b, MagicOffset)
	if !ok {
		return Header{}, fmt.Errorf("fdt header: %w (%d of %d bytes)", ErrTruncated, len(b), HeaderSize)
	}
	if magic != Magic {
		return Header{}, fmt.Errorf("fdt header: %w (0x%08x)", ErrBadMagic, magic)
	}
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("fdt header: %w (%d of %d bytes)", ErrTruncated, len(b), HeaderSize)
	}

	h := Header{
		Magic:           buf.U32BE(b[MagicOffset:]),
		TotalSize:       buf.U32BE(b[TotalSizeOffset:]),
		OffDTStruct:     buf.U32BE(b[OffDTStructOffset:]),
		OffDTStrings:    buf.U32BE(b[OffDTStringsOffset:]),
		OffMemRsvmap:    buf.U32BE(b[OffMemRsvmapOffset:]),
		Version:         buf.U32BE(b[VersionOffset:]),
		LastCompVersion: buf.U32BE(b[LastCompVersionOffset:]),
		BootCPUIDPhys:   buf.U32BE(b[BootCPUIDPhysOffset:]),
		SizeDTStrings:   buf.U32BE(b[SizeDTStringsOffset:]),
		SizeDTStruct:    buf.U32BE(b[SizeDTStructOffset:]),
	}

	if h.Version < MinSupportedVersion {
		return Header{}, fmt.Errorf("fdt header: %w (version %d < %d)",
			ErrUnsupportedVersion, h.Version, MinSupportedVersion)
	}
	if h.Version > SupportedVersion && h.LastCompVersion > SupportedVersion {
		return Header{}, fmt.Errorf("fdt header: %w (version %d, last compatible %d)",
			ErrUnsupportedVersion, h.Version, h.LastCompVersion)
	}
	if h.LastCompVersion > h.Version {
		return Header{}, fmt.Errorf("fdt header: %w (last compatible %d > version %d)",
			ErrUnsupportedVersion, h.LastCompVersion, h.Version)
	}

	// Compared in uint64 so a declared size past the int range of a 32-bit
	// platform cannot wrap negative and slip through.
	if uint64(h.TotalSize) > uint64(len(b)) {
		return Header{}, fmt.Errorf("fdt header: %w (declared %d, have %d)",
			ErrTruncated, h.TotalSize, len(b))
	}
	if h.TotalSize < HeaderSize {
		return Header{}, fmt.Errorf("fdt header: %w (total size %d < header)",
			ErrTruncated, h.TotalSize)
	}

	if err := checkBlock(h.TotalSize, h.OffDTStruct, h.SizeDTStruct, "struct"); err != nil {
		return Header{}, err
	}
	if err := checkBlock(h.TotalSize, h.OffDTStrings, h.SizeDTStrings, "strings"); err != nil {
		return Header{}, err
	}
	if err := checkBlock(h.TotalSize, h.OffMemRsvmap, 0, "reservation"); err != nil {
		return Header{}, err
	}
	if !Aligned4(int(h.OffDTStruct)) {
		return Header{}, fmt.Errorf("fdt header: %w (struct block misaligned at 0x%x)",
			ErrBadStructure, h.OffDTStruct)
	}
	if h.OffMemRsvmap%8 != 0 {
		return Header{}, fmt.Errorf("fdt header: %w (reservation block misaligned at 0x%x)",
			ErrBadStructure, h.OffMemRsvmap)
	}

	return h, nil
}

// checkBlock verifies that [off, off+size) lies inside the blob and does not
// overlap the header region.
func checkBlock(total, off, size uint32, name string) error {
	if off < HeaderSize {
		return fmt.Errorf("fdt header: %w (%s block at 0x%x overlaps header)",
			ErrBadStructure, name, off)
	}
	end := uint64(off) + uint64(size)
	if end > uint64(total) {
		return fmt.Errorf("fdt header: %w (%s block [0x%x, 0x%x) exceeds total size 0x%x)",
			ErrTruncated, name, off, end, total)
	}
	return nil
}
