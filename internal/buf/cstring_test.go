package buf

import (
	"bytes"
	"testing"
)

func TestCString(t *testing.T) {
	data := []byte("uart@10000000\x00reg\x00")

	got, ok := CString(data, 0)
	if !ok || !bytes.Equal(got, []byte("uart@10000000")) {
		t.Fatalf("CString(0) = %q,%v", got, ok)
	}
	got, ok = CString(data, 14)
	if !ok || !bytes.Equal(got, []byte("reg")) {
		t.Fatalf("CString(14) = %q,%v", got, ok)
	}

	// Offset at the terminator yields the empty string.
	got, ok = CString(data, 13)
	if !ok || len(got) != 0 {
		t.Fatalf("CString at NUL = %q,%v", got, ok)
	}

	if _, ok := CString([]byte("noterm"), 0); ok {
		t.Fatalf("CString should fail without a terminator")
	}
	if _, ok := CString(data, -1); ok {
		t.Fatalf("CString should reject negative offset")
	}
	if _, ok := CString(data, len(data)+1); ok {
		t.Fatalf("CString should reject offset past the end")
	}
}

func TestCStringN(t *testing.T) {
	data := []byte("abcdef\x00")

	got, ok := CStringN(data, 0, 7)
	if !ok || !bytes.Equal(got, []byte("abcdef")) {
		t.Fatalf("CStringN = %q,%v", got, ok)
	}

	// The terminator lies beyond the scan window.
	if _, ok := CStringN(data, 0, 3); ok {
		t.Fatalf("CStringN should not scan past max")
	}

	// Window larger than the buffer is clamped, not an error.
	got, ok = CStringN(data, 0, 100)
	if !ok || !bytes.Equal(got, []byte("abcdef")) {
		t.Fatalf("CStringN clamped = %q,%v", got, ok)
	}

	if _, ok := CStringN(data, 0, -1); ok {
		t.Fatalf("CStringN should reject negative max")
	}
}
