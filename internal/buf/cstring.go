package buf

import "bytes"

// CString returns the bytes of the NUL-terminated string starting at off,
// excluding the terminator. ok is false when off is out of bounds or no NUL
// byte exists before the end of b.
func CString(b []byte, off int) ([]byte, bool) {
	if off < 0 || off > len(b) {
		return nil, false
	}
	i := bytes.IndexByte(b[off:], 0)
	if i < 0 {
		return nil, false
	}
	return b[off : off+i], true
}

// CStringN behaves like CString but refuses to scan more than max bytes past
// off. Used where the format bounds a string's region (for example the end of
// the struct block) and a missing terminator must not leak reads beyond it.
func CStringN(b []byte, off, max int) ([]byte, bool) {
	if off < 0 || max < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, max)
	if !ok || end > len(b) {
		end = len(b)
	}
	i := bytes.IndexByte(b[off:end], 0)
	if i < 0 {
		return nil, false
	}
	return b[off : off+i], true
}
