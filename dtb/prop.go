package dtb

import (
	"fmt"
	"unicode/utf8"

	"github.com/joshuapare/dtbkit/internal/buf"
)

// Prop is a zero-cost cursor at a property token. It records the payload's
// position and the name's strings-block offset; the bytes themselves stay in
// the blob and are only viewed, never copied, until a caller asks for a
// string form.
type Prop struct {
	tree    *Tree
	off     int
	nameOff int
	dataOff int
	dataLen int
	node    Node
}

// Node returns the node this property belongs to.
func (p Prop) Node() Node { return p.node }

// Offset returns the blob offset of the property's tag.
func (p Prop) Offset() int { return p.off }

// Len returns the payload length in bytes.
func (p Prop) Len() int { return p.dataLen }

// Raw returns the payload as a zero-copy view into the blob. The bounds were
// validated when the token was decoded, so the view is always in range.
func (p Prop) Raw() []byte {
	s, _ := buf.Slice(p.tree.data, p.dataOff, p.dataLen)
	return s
}

// NameBytes resolves the property name from the strings block as a zero-copy
// view. Name offsets come from the blob and are validated on every call.
func (p Prop) NameBytes() ([]byte, error) {
	return p.tree.stringBytes(p.nameOff)
}

// Name resolves the property name as a string.
func (p Prop) Name() (string, error) {
	return p.tree.stringAt(p.nameOff)
}

// U32 decodes the i'th big-endian uint32 cell of the payload. The index is
// bounds-checked against the payload with overflow-safe arithmetic; an index
// past the end yields ErrInsufficientLength.
func (p Prop) U32(i int) (uint32, error) {
	if err := p.checkCell(i, 4); err != nil {
		return 0, err
	}
	v, _ := buf.U32BEAt(p.tree.data, p.dataOff+i*4)
	return v, nil
}

// U64 decodes the i'th big-endian uint64 cell of the payload.
func (p Prop) U64(i int) (uint64, error) {
	if err := p.checkCell(i, 8); err != nil {
		return 0, err
	}
	v, _ := buf.U64BEAt(p.tree.data, p.dataOff+i*8)
	return v, nil
}

// Phandle decodes the payload's first cell as a phandle reference.
func (p Prop) Phandle() (uint32, error) {
	return p.U32(0)
}

func (p Prop) checkCell(i, width int) error {
	if i < 0 {
		return fmt.Errorf("dtb: negative cell index %d: %w", i, ErrInsufficientLength)
	}
	if _, err := buf.CheckListBounds(p.dataLen, 0, i+1, width); err != nil {
		return fmt.Errorf("dtb: cell %d of width %d exceeds %d-byte payload: %w",
			i, width, p.dataLen, ErrInsufficientLength)
	}
	return nil
}

// Str decodes the payload as a single NUL-terminated UTF-8 string. An empty
// payload, a missing terminator, or invalid UTF-8 is ErrBadString.
func (p Prop) Str() (string, error) {
	raw := p.Raw()
	if len(raw) == 0 || raw[len(raw)-1] != 0 {
		return "", fmt.Errorf("dtb: property payload at 0x%x is not a terminated string: %w",
			p.dataOff, ErrBadString)
	}
	s := raw[:len(raw)-1]
	if !utf8.Valid(s) {
		return "", fmt.Errorf("dtb: non-UTF-8 string payload at 0x%x: %w",
			p.dataOff, ErrBadString)
	}
	return string(s), nil
}

// StrAt decodes the i'th element of the payload's NUL-separated string list.
// An index past the last element yields ErrInsufficientLength.
func (p Prop) StrAt(i int) (string, error) {
	if i < 0 {
		return "", fmt.Errorf("dtb: negative string index %d: %w", i, ErrInsufficientLength)
	}
	var found string
	n := 0
	err := p.IterStrings(func(s string) error {
		if n == i {
			found = s
			return errStopWalk
		}
		n++
		return nil
	})
	if err == errStopWalk {
		return found, nil
	}
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("dtb: string index %d exceeds %d-element list: %w",
		i, n, ErrInsufficientLength)
}

// IterStrings decodes the payload as a NUL-separated string list and calls fn
// for each element in order, stopping at fn's first non-nil error. The string
// passed to fn aliases the blob via an unavoidable conversion per element;
// no slice of results is built.
func (p Prop) IterStrings(fn func(s string) error) error {
	raw := p.Raw()
	if len(raw) == 0 || raw[len(raw)-1] != 0 {
		return fmt.Errorf("dtb: property payload at 0x%x is not a string list: %w",
			p.dataOff, ErrBadString)
	}
	for start := 0; start < len(raw); {
		elem, ok := buf.CString(raw, start)
		if !ok {
			return fmt.Errorf("dtb: unterminated string list element at 0x%x: %w",
				p.dataOff+start, ErrBadString)
		}
		if !utf8.Valid(elem) {
			return fmt.Errorf("dtb: non-UTF-8 string list element at 0x%x: %w",
				p.dataOff+start, ErrBadString)
		}
		if err := fn(string(elem)); err != nil {
			return err
		}
		start += len(elem) + 1
	}
	return nil
}

// StrList materializes the payload's string list as a new slice. Requires
// Options.EnableAlloc; IterStrings covers the same payloads without building
// a result slice.
func (p Prop) StrList() ([]string, error) {
	if !p.tree.opts.EnableAlloc {
		return nil, fmt.Errorf("dtb: StrList: %w", ErrAllocRequired)
	}
	var out []string
	err := p.IterStrings(func(s string) error {
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// containsString reports whether the payload, read as a NUL-separated string
// list, contains target as an exact element. The comparison works on raw byte
// views so matching never allocates.
func (p Prop) containsString(target string) (bool, error) {
	raw := p.Raw()
	if len(raw) == 0 || raw[len(raw)-1] != 0 {
		return false, nil
	}
	for start := 0; start < len(raw); {
		elem, ok := buf.CString(raw, start)
		if !ok {
			return false, fmt.Errorf("dtb: unterminated string list element at 0x%x: %w",
				p.dataOff+start, ErrBadString)
		}
		if string(elem) == target {
			return true, nil
		}
		start += len(elem) + 1
	}
	return false, nil
}
