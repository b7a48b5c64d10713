package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/joshuapare/dtbkit/dtb"
)

// palette returns the sprint functions for the text form. With colors off the
// functions degrade to plain Sprint.
func (p *Printer) palette() (node, prop, value func(a ...any) string) {
	if !p.opts.Color {
		return fmt.Sprint, fmt.Sprint, fmt.Sprint
	}
	return color.New(color.FgCyan, color.Bold).SprintFunc(),
		color.New(color.FgGreen).SprintFunc(),
		color.New(color.FgYellow).SprintFunc()
}

// printText renders the subtree at n in device tree source style:
//
//	/ {
//	    soc {
//	        uart@10000000 {
//	            compatible = "ns16550a";
//	            reg = <0x10000000>;
//	        };
//	    };
//	};
func (p *Printer) printText(n dtb.Node, depth int) error {
	nodeC, _, _ := p.palette()
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	name, err := n.Name()
	if err != nil {
		return err
	}
	if name == "" {
		name = "/"
	}
	fmt.Fprintf(p.w, "%s%s {\n", indent, nodeC(name))

	if p.opts.ShowProps {
		it := n.Props()
		for {
			pr, err := it.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if err := p.printPropText(pr, depth+1); err != nil {
				return err
			}
		}
	}

	if p.opts.MaxDepth == 0 || depth+1 < p.opts.MaxDepth {
		it := n.Children()
		for {
			child, err := it.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if err := p.printText(child, depth+1); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(p.w, "%s};\n", indent)
	return nil
}

// printPropText renders one property in source style. Empty payloads print as
// boolean flags, strings quoted, word-multiple payloads as cell lists, and
// everything else as a byte list.
func (p *Printer) printPropText(pr dtb.Prop, depth int) error {
	_, propC, valueC := p.palette()
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	name, err := pr.Name()
	if err != nil {
		return err
	}
	raw := pr.Raw()

	switch classify(raw) {
	case valueEmpty:
		fmt.Fprintf(p.w, "%s%s;\n", indent, propC(name))
		return nil

	case valueString:
		s, err := pr.Str()
		if err != nil {
			return err
		}
		fmt.Fprintf(p.w, "%s%s = %s;\n", indent, propC(name), valueC(fmt.Sprintf("%q", s)))
		return nil

	case valueStrings:
		var quoted []string
		err := pr.IterStrings(func(s string) error {
			quoted = append(quoted, fmt.Sprintf("%q", s))
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(p.w, "%s%s = %s;\n", indent, propC(name), valueC(strings.Join(quoted, ", ")))
		return nil

	case valueCells:
		var sb strings.Builder
		for i := 0; i < len(raw)/4; i++ {
			v, err := pr.U32(i)
			if err != nil {
				return err
			}
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "0x%x", v)
		}
		fmt.Fprintf(p.w, "%s%s = %s;\n", indent, propC(name), valueC("<"+sb.String()+">"))
		return nil

	default:
		clipped := p.clipBytes(raw)
		var sb strings.Builder
		for i, b := range clipped {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%02x", b)
		}
		suffix := ""
		if len(clipped) < len(raw) {
			suffix = fmt.Sprintf(" /* truncated, %d total bytes */", len(raw))
		}
		fmt.Fprintf(p.w, "%s%s = %s%s;\n", indent, propC(name), valueC("["+sb.String()+"]"), suffix)
		return nil
	}
}

// printReservationsText renders the memory reservation block as /memreserve/
// directives.
func (p *Printer) printReservationsText() error {
	entries, err := p.buildReservations()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(p.w, "/* no memory reservations */")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(p.w, "/memreserve/ %s %s;\n", e.Address, e.Size)
	}
	return nil
}
