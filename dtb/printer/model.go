package printer

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/joshuapare/dtbkit/dtb"
)

// valueKind classifies a property payload for display. The blob stores no
// types, so classification is heuristic in the same way device tree compilers
// do it: empty, printable NUL-terminated strings, 32-bit cells, raw bytes.
type valueKind int

const (
	valueEmpty valueKind = iota
	valueString
	valueStrings
	valueCells
	valueBytes
)

// classify inspects a payload and picks a display form.
func classify(raw []byte) valueKind {
	if len(raw) == 0 {
		return valueEmpty
	}
	if looksLikeStrings(raw) {
		n := 0
		for _, b := range raw {
			if b == 0 {
				n++
			}
		}
		if n == 1 {
			return valueString
		}
		return valueStrings
	}
	if len(raw)%4 == 0 {
		return valueCells
	}
	return valueBytes
}

// looksLikeStrings reports whether raw is one or more non-empty printable
// ASCII strings, each NUL-terminated.
func looksLikeStrings(raw []byte) bool {
	if raw[len(raw)-1] != 0 {
		return false
	}
	elemLen := 0
	for _, b := range raw {
		if b == 0 {
			if elemLen == 0 {
				return false
			}
			elemLen = 0
			continue
		}
		if b < 0x20 || b > 0x7e {
			return false
		}
		elemLen++
	}
	return true
}

// modelNode is the serialization form shared by JSON and YAML output.
type modelNode struct {
	Name       string      `json:"name" yaml:"name"`
	Properties []modelProp `json:"properties,omitempty" yaml:"properties,omitempty"`
	Children   []modelNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// modelProp is one property in serialization form. Value is nil for an empty
// payload, a string, a []string, a []string of "0x..." cells, or a hex dump.
type modelProp struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// modelReservation is one memory reservation entry in serialization form.
type modelReservation struct {
	Address string `json:"address" yaml:"address"`
	Size    string `json:"size" yaml:"size"`
}

// buildModel materializes the subtree at n up to the depth limit.
func (p *Printer) buildModel(n dtb.Node, depth int) (modelNode, error) {
	name, err := n.Name()
	if err != nil {
		return modelNode{}, err
	}
	if name == "" {
		name = "/"
	}
	m := modelNode{Name: name}

	if p.opts.ShowProps {
		it := n.Props()
		for {
			pr, err := it.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return modelNode{}, err
			}
			mp, err := p.buildPropModel(pr)
			if err != nil {
				return modelNode{}, err
			}
			m.Properties = append(m.Properties, mp)
		}
	}

	if p.opts.MaxDepth > 0 && depth+1 >= p.opts.MaxDepth {
		return m, nil
	}

	it := n.Children()
	for {
		child, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return modelNode{}, err
		}
		cm, err := p.buildModel(child, depth+1)
		if err != nil {
			return modelNode{}, err
		}
		m.Children = append(m.Children, cm)
	}
	return m, nil
}

func (p *Printer) buildPropModel(pr dtb.Prop) (modelProp, error) {
	name, err := pr.Name()
	if err != nil {
		return modelProp{}, err
	}
	raw := pr.Raw()
	m := modelProp{Name: name}

	switch classify(raw) {
	case valueEmpty:

	case valueString:
		s, err := pr.Str()
		if err != nil {
			return modelProp{}, err
		}
		m.Value = s

	case valueStrings:
		var list []string
		err := pr.IterStrings(func(s string) error {
			list = append(list, s)
			return nil
		})
		if err != nil {
			return modelProp{}, err
		}
		m.Value = list

	case valueCells:
		cells := make([]string, 0, len(raw)/4)
		for i := 0; i < len(raw)/4; i++ {
			v, err := pr.U32(i)
			if err != nil {
				return modelProp{}, err
			}
			cells = append(cells, fmt.Sprintf("0x%x", v))
		}
		m.Value = cells

	case valueBytes:
		m.Value = hex.EncodeToString(p.clipBytes(raw))
	}
	return m, nil
}

// buildReservations materializes the memory reservation block.
func (p *Printer) buildReservations() ([]modelReservation, error) {
	var out []modelReservation
	it := p.tree.ReservedEntries()
	for {
		e, err := it.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, modelReservation{
			Address: fmt.Sprintf("0x%x", e.Address),
			Size:    fmt.Sprintf("0x%x", e.Size),
		})
	}
}

// clipBytes applies the MaxValueBytes limit.
func (p *Printer) clipBytes(raw []byte) []byte {
	if p.opts.MaxValueBytes > 0 && len(raw) > p.opts.MaxValueBytes {
		return raw[:p.opts.MaxValueBytes]
	}
	return raw
}
