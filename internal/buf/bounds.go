package buf

import "fmt"

// AddOverflowSafe returns a+b with ok = false when the sum wraps the int
// range. Offsets the decoder holds are always inside some buffer, but the
// lengths added to them come straight from the blob, so every offset+length
// computation goes through here before it is compared against a bound.
func AddOverflowSafe(a, b int) (int, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// MulOverflowSafe returns a*b for non-negative operands, with ok = false on a
// negative operand or an overflowing product. Cell accessors depend on it for
// index*width products driven by untrusted property lengths.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

// CheckListBounds returns the end offset of count elements of elementSize
// bytes starting at offset, and fails when the run does not fit inside a
// region of bufLen bytes. Reservation entries, property payloads, and cell
// reads are all validated through this one check:
//
//	end, err := buf.CheckListBounds(limit, off, count, elemSize)
//	if err != nil {
//	    return err
//	}
//	// reads in [off, end) are inside the region
//
// A negative offset, count, or element size fails; the blob encodes these as
// unsigned fields, so a negative value here means an upstream conversion
// already wrapped.
func CheckListBounds(bufLen, offset, count, elementSize int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset %d", offset)
	}
	size, ok := MulOverflowSafe(count, elementSize)
	if !ok {
		return 0, fmt.Errorf("%d elements of %d bytes overflow", count, elementSize)
	}
	end, ok := AddOverflowSafe(offset, size)
	if !ok {
		return 0, fmt.Errorf("%d bytes at offset %d overflow", size, offset)
	}
	if end > bufLen {
		return 0, fmt.Errorf("%d bytes at offset %d exceed %d-byte extent", size, offset, bufLen)
	}
	return end, nil
}

// Slice returns the sub-slice [off, off+n) when it lies inside b.
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether [off, off+n) lies inside b.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
