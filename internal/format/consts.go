// Package format houses low-level decoders for the Flattened Device Tree
// (DTB) file format. The goal is to keep the parsing focused, allocation-free,
// and independent from the public API so higher-level packages can orchestrate
// the data in a more ergonomic form.
package format

const (
	// Magic is the big-endian number at the start of every device tree blob.
	Magic = 0xd00dfeed

	// HeaderSize is the size of the fdt_header in bytes: ten big-endian
	// uint32 fields.
	HeaderSize = 40

	// MinSupportedVersion is the oldest blob version this decoder accepts.
	// Version 16 introduced the flat (non-nested) property name encoding
	// every modern producer emits.
	MinSupportedVersion = 16

	// SupportedVersion is the newest version of the specification this
	// decoder understands. Blobs with a larger version field are accepted
	// only when their last-compatible-version field reaches back to it.
	SupportedVersion = 17

	// MaxNodeNameLen is the classic node name limit (31 characters plus the
	// NUL terminator) from v1 of the specification. Modern dtc output may
	// exceed it, so the tokenizer does not enforce it.
	MaxNodeNameLen = 31
)

// Header field offsets. All fields are big-endian uint32.
const (
	MagicOffset           = 0x00
	TotalSizeOffset       = 0x04
	OffDTStructOffset     = 0x08
	OffDTStringsOffset    = 0x0C
	OffMemRsvmapOffset    = 0x10
	VersionOffset         = 0x14
	LastCompVersionOffset = 0x18
	BootCPUIDPhysOffset   = 0x1C
	SizeDTStringsOffset   = 0x20
	SizeDTStructOffset    = 0x24
)

// Struct block token values. Each token is a big-endian uint32 aligned to a
// 4-byte boundary.
const (
	TokBeginNode = 0x1
	TokEndNode   = 0x2
	TokProp      = 0x3
	TokNop       = 0x4
	TokEnd       = 0x9
)

const (
	// TokenSize is the size of a struct block token tag.
	TokenSize = 4

	// PropHeaderSize is the size of the length and name-offset fields that
	// follow a TokProp tag.
	PropHeaderSize = 8

	// ReserveEntrySize is the size of one memory reservation entry: two
	// big-endian uint64 fields (address, size).
	ReserveEntrySize = 16

	// StructAlignment is the required alignment of the struct block, of every
	// token within it, and of the padding after names and property payloads.
	StructAlignment = 4
)
