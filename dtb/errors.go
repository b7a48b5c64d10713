package dtb

import (
	"errors"

	"github.com/joshuapare/dtbkit/internal/format"
)

// Sentinel errors from the wire-format layer, re-exported so callers can
// match them with errors.Is without importing internal packages.
var (
	// ErrBadMagic indicates the buffer did not start with 0xd00dfeed.
	ErrBadMagic = format.ErrBadMagic
	// ErrTruncated indicates a read would have crossed the end of the blob
	// or of a declared block.
	ErrTruncated = format.ErrTruncated
	// ErrUnsupportedVersion indicates the blob's version window does not
	// overlap the versions this decoder understands.
	ErrUnsupportedVersion = format.ErrUnsupportedVersion
	// ErrBadStructure indicates the struct block violated the token grammar.
	ErrBadStructure = format.ErrBadStructure
	// ErrBadString indicates a string was unterminated or not valid UTF-8.
	ErrBadString = format.ErrBadString
)

var (
	// ErrInsufficientLength indicates a requested value would extend past a
	// property's payload.
	ErrInsufficientLength = errors.New("dtb: value exceeds property length")

	// ErrNotFound indicates a requested node or property was missing.
	ErrNotFound = errors.New("dtb: not found")

	// ErrAllocRequired indicates a heap-backed convenience helper was called
	// on a Tree opened without Options.EnableAlloc.
	ErrAllocRequired = errors.New("dtb: allocation support disabled")
)
