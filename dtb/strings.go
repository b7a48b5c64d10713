package dtb

import (
	"fmt"
	"unicode/utf8"

	"github.com/joshuapare/dtbkit/internal/buf"
)

// stringBytes resolves a property name offset inside the strings block,
// returning a zero-copy view without the NUL terminator. The scan never
// leaves the block's declared extent.
func (t *Tree) stringBytes(nameOff int) ([]byte, error) {
	if nameOff < 0 || nameOff >= t.StringsSize() {
		return nil, fmt.Errorf("dtb: name offset 0x%x outside strings block (size 0x%x): %w",
			nameOff, t.StringsSize(), ErrBadStructure)
	}
	abs := t.StringsOffset() + nameOff
	s, ok := buf.CStringN(t.data, abs, t.StringsSize()-nameOff)
	if !ok {
		return nil, fmt.Errorf("dtb: unterminated string at name offset 0x%x: %w",
			nameOff, ErrBadString)
	}
	return s, nil
}

// stringAt is stringBytes plus UTF-8 validation and conversion.
func (t *Tree) stringAt(nameOff int) (string, error) {
	s, err := t.stringBytes(nameOff)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(s) {
		return "", fmt.Errorf("dtb: non-UTF-8 string at name offset 0x%x: %w",
			nameOff, ErrBadString)
	}
	return string(s), nil
}
