package dtb

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Node is a zero-cost cursor at a node's open token. It does NOT own a
// subtree; it only records where the node begins, so copying a Node is free
// and two cursors at the same offset are interchangeable.
type Node struct {
	tree  *Tree
	off   int
	depth int
}

// Tree returns the handle this cursor belongs to.
func (n Node) Tree() *Tree { return n.tree }

// Offset returns the blob offset of the node's open token. A Node can be
// compared or rebuilt from this offset alone.
func (n Node) Offset() int { return n.off }

// Depth returns the node's depth in the tree. The root is at depth 0.
func (n Node) Depth() int { return n.depth }

// NameBytes returns the node's name, including any unit-address suffix, as a
// zero-copy view into the blob. The name is re-read from the open token on
// every call; nothing is cached on the cursor.
func (n Node) NameBytes() ([]byte, error) {
	tz := n.tree.tokenizerAt(n.off, 0)
	tok, err := tz.Next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenBeginNode {
		return nil, fmt.Errorf("dtb: cursor at 0x%x is not a node open token (%s): %w",
			n.off, tok.Kind, ErrBadStructure)
	}
	return tok.Name, nil
}

// Name returns the node's name as a string. The root node's name is empty.
func (n Node) Name() (string, error) {
	b, err := n.NameBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("dtb: non-UTF-8 node name at 0x%x: %w", n.off, ErrBadString)
	}
	return string(b), nil
}

// Props returns an iterator over the node's own properties, in on-disk order.
// Properties of descendant nodes are not included.
func (n Node) Props() *PropIter {
	return &PropIter{node: n, tz: n.tree.tokenizerAt(n.off, 0)}
}

// Prop returns the node's property with the given name, or ErrNotFound.
func (n Node) Prop(name string) (Prop, error) {
	it := n.Props()
	for {
		p, err := it.Next()
		if err == io.EOF {
			return Prop{}, fmt.Errorf("dtb: property %q: %w", name, ErrNotFound)
		}
		if err != nil {
			return Prop{}, err
		}
		nb, err := p.NameBytes()
		if err != nil {
			return Prop{}, err
		}
		if string(nb) == name {
			return p, nil
		}
	}
}

// Children returns an iterator over the node's direct children, in on-disk
// order. Grandchildren are skipped by depth tracking, never by recursion.
func (n Node) Children() *ChildIter {
	return &ChildIter{parent: n, tz: n.tree.tokenizerAt(n.off, 0)}
}

// Descendants returns an iterator over every node below this one, in
// depth-first pre-order, excluding the node itself.
func (n Node) Descendants() *DescendantIter {
	return &DescendantIter{origin: n}
}

// Siblings returns an iterator over the nodes that follow this one at the
// same level under the same parent, in on-disk order.
func (n Node) Siblings() *SiblingIter {
	return &SiblingIter{origin: n, tz: n.tree.tokenizerAt(n.off, 1)}
}
