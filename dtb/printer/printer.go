// Package printer renders device trees for humans and for machines: a
// source-style text form, JSON, and YAML. It consumes the read-only cursors
// of the dtb package and never touches the blob directly.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/dtbkit/dtb"
)

const (
	DefaultIndentSize    = 4
	DefaultMaxDepth      = 0
	DefaultMaxValueBytes = 64
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs device tree source style text.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"

	// FormatYAML outputs YAML format.
	FormatYAML Format = "yaml"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, yaml).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per nesting level (text format only).
	// Default: 4
	IndentSize int

	// MaxDepth limits how deep below the starting node output goes
	// (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowProps includes property values in the output.
	// Default: true
	ShowProps bool

	// MaxValueBytes limits how many bytes of an opaque property payload are
	// displayed. Longer payloads are truncated. Set to 0 for no limit.
	// Default: 64
	MaxValueBytes int

	// Color enables ANSI colors (text format only).
	// Default: false
	Color bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		MaxDepth:      DefaultMaxDepth,
		ShowProps:     true,
		MaxValueBytes: DefaultMaxValueBytes,
	}
}

// Printer handles formatted output of device trees.
type Printer struct {
	tree *dtb.Tree
	w    io.Writer
	opts Options
}

// New creates a new Printer over t writing to w.
//
// Example:
//
//	f, _ := dtb.Open("board.dtb")
//	defer f.Close()
//	p := printer.New(f.Tree(), os.Stdout, printer.DefaultOptions())
//	p.PrintTree("/")
func New(t *dtb.Tree, w io.Writer, opts Options) *Printer {
	return &Printer{tree: t, w: w, opts: opts}
}

// PrintTree prints the subtree rooted at the node the path resolves to.
func (p *Printer) PrintTree(path string) error {
	n, err := p.tree.NodeAtPath(path)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", path, err)
	}
	return p.PrintNode(n)
}

// PrintNode prints the subtree rooted at n.
func (p *Printer) PrintNode(n dtb.Node) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(n)
	case FormatYAML:
		return p.printYAML(n)
	default:
		return p.printText(n, 0)
	}
}

// PrintProp prints a single property.
func (p *Printer) PrintProp(pr dtb.Prop) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printPropJSON(pr)
	case FormatYAML:
		return p.printPropYAML(pr)
	default:
		return p.printPropText(pr, 0)
	}
}

// PrintReservations prints the memory reservation block.
func (p *Printer) PrintReservations() error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printReservationsJSON()
	case FormatYAML:
		return p.printReservationsYAML()
	default:
		return p.printReservationsText()
	}
}
