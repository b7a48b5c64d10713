// Package buf contains bounds-checked, endian-safe decoding helpers.
//
// Every read the decoder performs is routed through this package: Slice and
// Has gate access to the backing buffer, and the U32BE/U64BE readers
// reassemble multi-byte integers byte-wise via encoding/binary so no typed
// read ever assumes the host's natural alignment.
package buf

import "encoding/binary"

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// U32BEAt reads a big-endian uint32 at off, reporting ok = false when the
// 4 bytes are not within b.
func U32BEAt(b []byte, off int) (uint32, bool) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(s), true
}

// U64BEAt reads a big-endian uint64 at off, reporting ok = false when the
// 8 bytes are not within b.
func U64BEAt(b []byte, off int) (uint64, bool) {
	s, ok := Slice(b, off, 8)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint64(s), true
}
