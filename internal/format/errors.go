package format

import "errors"

var (
	// ErrBadMagic indicates the buffer did not start with the FDT magic number.
	ErrBadMagic = errors.New("format: bad magic")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnsupportedVersion indicates the blob's version window does not
	// overlap the versions this decoder understands.
	ErrUnsupportedVersion = errors.New("format: unsupported version")
	// ErrBadStructure indicates the struct block violated the token grammar
	// (unknown tag, unmatched node close, misplaced end token).
	ErrBadStructure = errors.New("format: malformed structure")
	// ErrBadString indicates a string was unterminated or not valid UTF-8.
	ErrBadString = errors.New("format: bad string")
)
