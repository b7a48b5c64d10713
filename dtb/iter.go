package dtb

import (
	"fmt"
	"io"
)

// ItemKind distinguishes the two things a depth-first walk can yield.
type ItemKind int

const (
	ItemNode ItemKind = iota
	ItemProp
)

// Item is one step of a depth-first walk: either a node open or a property of
// the most recently opened node.
type Item struct {
	Kind ItemKind

	// Node is the yielded node for ItemNode, or the owning node for ItemProp.
	Node Node

	// Prop is valid only when Kind is ItemProp.
	Prop Prop
}

// ItemIter walks the struct block in depth-first pre-order, yielding node
// opens and properties as they appear on disk. All other iterators in this
// package are thin filters over this one, so grammar enforcement lives in
// exactly one place. Nops are elided.
type ItemIter struct {
	t       *Tree
	tz      Tokenizer
	cur     Node
	haveCur bool

	// baseDepth is the absolute depth of the first node this iterator can
	// open; the tokenizer's own counter is relative to the entry offset.
	baseDepth int

	// subtree stops iteration once nesting returns to the entry level,
	// confining the walk to a single node's subtree.
	subtree bool

	done bool
}

// Items returns an iterator over every node and property in the tree.
func (t *Tree) Items() *ItemIter {
	return &ItemIter{t: t, tz: t.Tokenizer()}
}

// items walks the subtree rooted at n, yielding n itself first.
func (n Node) items() *ItemIter {
	return &ItemIter{
		t:         n.tree,
		tz:        n.tree.tokenizerAt(n.off, 0),
		baseDepth: n.depth,
		subtree:   true,
	}
}

// Next returns the next item or io.EOF when the walk is exhausted. A property
// token appearing before any node open is ErrBadStructure: the format requires
// properties to follow their node's open token.
func (it *ItemIter) Next() (Item, error) {
	if it.done {
		return Item{}, io.EOF
	}
	for {
		tok, err := it.tz.Next()
		if err != nil {
			it.done = true
			return Item{}, err
		}
		switch tok.Kind {
		case TokenBeginNode:
			n := Node{
				tree:  it.t,
				off:   tok.Off,
				depth: it.baseDepth + it.tz.Depth() - 1,
			}
			it.cur = n
			it.haveCur = true
			return Item{Kind: ItemNode, Node: n}, nil

		case TokenProp:
			if !it.haveCur {
				it.done = true
				return Item{}, fmt.Errorf("dtb: property at 0x%x outside any node: %w",
					tok.Off, ErrBadStructure)
			}
			p := Prop{
				tree:    it.t,
				off:     tok.Off,
				nameOff: tok.NameOff,
				dataOff: tok.DataOff,
				dataLen: tok.DataLen,
				node:    it.cur,
			}
			return Item{Kind: ItemProp, Node: it.cur, Prop: p}, nil

		case TokenEndNode:
			it.haveCur = false
			if it.subtree && it.tz.Depth() == 0 {
				it.done = true
				return Item{}, io.EOF
			}

		case TokenNop:

		case TokenEnd:
			it.done = true
			return Item{}, io.EOF
		}
	}
}

// NodeIter iterates every node in the tree in depth-first pre-order.
type NodeIter struct {
	items *ItemIter
}

// Nodes returns an iterator over all nodes, starting with the root.
func (t *Tree) Nodes() *NodeIter {
	return &NodeIter{items: t.Items()}
}

// Next returns the next node or io.EOF.
func (it *NodeIter) Next() (Node, error) {
	for {
		item, err := it.items.Next()
		if err != nil {
			return Node{}, err
		}
		if item.Kind == ItemNode {
			return item.Node, nil
		}
	}
}

// AllPropIter iterates every property in the tree in document order.
type AllPropIter struct {
	items *ItemIter
}

// Props returns an iterator over every property of every node.
func (t *Tree) Props() *AllPropIter {
	return &AllPropIter{items: t.Items()}
}

// Next returns the next property or io.EOF.
func (it *AllPropIter) Next() (Prop, error) {
	for {
		item, err := it.items.Next()
		if err != nil {
			return Prop{}, err
		}
		if item.Kind == ItemProp {
			return item.Prop, nil
		}
	}
}

// PropIter iterates a single node's own properties. Iteration ends at the
// node's first child or its close token, whichever comes first; the format
// guarantees properties precede children.
type PropIter struct {
	node    Node
	tz      Tokenizer
	started bool
	done    bool
}

// Next returns the node's next property or io.EOF.
func (it *PropIter) Next() (Prop, error) {
	if it.done {
		return Prop{}, io.EOF
	}
	if !it.started {
		if err := it.enter(); err != nil {
			it.done = true
			return Prop{}, err
		}
	}
	for {
		tok, err := it.tz.Next()
		if err != nil {
			it.done = true
			return Prop{}, err
		}
		switch tok.Kind {
		case TokenProp:
			return Prop{
				tree:    it.node.tree,
				off:     tok.Off,
				nameOff: tok.NameOff,
				dataOff: tok.DataOff,
				dataLen: tok.DataLen,
				node:    it.node,
			}, nil
		case TokenBeginNode, TokenEndNode:
			it.done = true
			return Prop{}, io.EOF
		case TokenNop:
		}
	}
}

// enter consumes the owning node's open token so the cursor sits on its
// contents.
func (it *PropIter) enter() error {
	tok, err := it.tz.Next()
	if err != nil {
		return err
	}
	if tok.Kind != TokenBeginNode {
		return fmt.Errorf("dtb: cursor at 0x%x is not a node open token (%s): %w",
			it.node.off, tok.Kind, ErrBadStructure)
	}
	it.started = true
	return nil
}

// ChildIter iterates a node's direct children. Deeper descendants are skipped
// by comparing nesting depth, so the walk stays iterative regardless of how
// deep the subtree goes.
type ChildIter struct {
	parent  Node
	tz      Tokenizer
	started bool
	done    bool
}

// Next returns the next direct child or io.EOF.
func (it *ChildIter) Next() (Node, error) {
	if it.done {
		return Node{}, io.EOF
	}
	if !it.started {
		tok, err := it.tz.Next()
		if err != nil {
			it.done = true
			return Node{}, err
		}
		if tok.Kind != TokenBeginNode {
			it.done = true
			return Node{}, fmt.Errorf("dtb: cursor at 0x%x is not a node open token (%s): %w",
				it.parent.off, tok.Kind, ErrBadStructure)
		}
		it.started = true
	}
	for {
		tok, err := it.tz.Next()
		if err != nil {
			it.done = true
			return Node{}, err
		}
		switch tok.Kind {
		case TokenBeginNode:
			if it.tz.Depth() == 2 {
				return Node{
					tree:  it.parent.tree,
					off:   tok.Off,
					depth: it.parent.depth + 1,
				}, nil
			}
		case TokenEndNode:
			if it.tz.Depth() == 0 {
				it.done = true
				return Node{}, io.EOF
			}
		case TokenProp, TokenNop:
		case TokenEnd:
			it.done = true
			return Node{}, io.EOF
		}
	}
}

// DescendantIter iterates every node strictly below an origin node, in
// depth-first pre-order.
type DescendantIter struct {
	origin Node
	items  *ItemIter
	init   bool
}

// Next returns the next descendant or io.EOF.
func (it *DescendantIter) Next() (Node, error) {
	if !it.init {
		it.items = it.origin.items()
		// The subtree walk yields the origin itself first; skip it.
		if _, err := it.items.Next(); err != nil {
			return Node{}, err
		}
		it.init = true
	}
	for {
		item, err := it.items.Next()
		if err != nil {
			return Node{}, err
		}
		if item.Kind == ItemNode {
			return item.Node, nil
		}
	}
}

// SiblingIter iterates the nodes that follow an origin node at the same level
// under the same parent. The origin itself is not yielded. The walk seeds the
// nesting counter as if the parent were open, so the parent's close token is
// what ends the sequence.
type SiblingIter struct {
	origin  Node
	tz      Tokenizer
	started bool
	done    bool
}

// Next returns the next following sibling or io.EOF.
func (it *SiblingIter) Next() (Node, error) {
	if it.done {
		return Node{}, io.EOF
	}
	// The root has no parent and therefore no siblings.
	if it.origin.depth == 0 {
		it.done = true
		return Node{}, io.EOF
	}
	if !it.started {
		tok, err := it.tz.Next()
		if err != nil {
			it.done = true
			return Node{}, err
		}
		if tok.Kind != TokenBeginNode {
			it.done = true
			return Node{}, fmt.Errorf("dtb: cursor at 0x%x is not a node open token (%s): %w",
				it.origin.off, tok.Kind, ErrBadStructure)
		}
		it.started = true
	}
	for {
		tok, err := it.tz.Next()
		if err != nil {
			it.done = true
			return Node{}, err
		}
		switch tok.Kind {
		case TokenBeginNode:
			if it.tz.Depth() == 2 {
				return Node{
					tree:  it.origin.tree,
					off:   tok.Off,
					depth: it.origin.depth,
				}, nil
			}
		case TokenEndNode:
			if it.tz.Depth() == 0 {
				it.done = true
				return Node{}, io.EOF
			}
		case TokenProp, TokenNop:
		case TokenEnd:
			it.done = true
			return Node{}, io.EOF
		}
	}
}

// CompatibleIter iterates nodes whose "compatible" property contains a given
// string as an exact element of its NUL-separated list. Matching reads raw
// byte views, so a full-tree scan performs no allocation.
type CompatibleIter struct {
	items  *ItemIter
	target string
}

// CompatibleNodes returns an iterator over nodes compatible with name, in
// depth-first order. The idiomatic probe loop is:
//
//	it := t.CompatibleNodes("ns16550a")
//	for {
//		n, err := it.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		// bind driver to n
//	}
func (t *Tree) CompatibleNodes(name string) *CompatibleIter {
	return &CompatibleIter{items: t.Items(), target: name}
}

// Next returns the next compatible node or io.EOF.
func (it *CompatibleIter) Next() (Node, error) {
	for {
		item, err := it.items.Next()
		if err != nil {
			return Node{}, err
		}
		if item.Kind != ItemProp {
			continue
		}
		nb, err := item.Prop.NameBytes()
		if err != nil {
			return Node{}, err
		}
		if string(nb) != "compatible" {
			continue
		}
		ok, err := item.Prop.containsString(it.target)
		if err != nil {
			return Node{}, err
		}
		if ok {
			return item.Node, nil
		}
	}
}

// FindProp scans every property in document order and returns the first one
// pred accepts, or ErrNotFound. A non-nil error from pred aborts the scan
// immediately and is returned wrapped.
func (t *Tree) FindProp(pred func(p Prop) (bool, error)) (Prop, error) {
	it := t.Items()
	for {
		item, err := it.Next()
		if err == io.EOF {
			return Prop{}, fmt.Errorf("dtb: no property matched: %w", ErrNotFound)
		}
		if err != nil {
			return Prop{}, err
		}
		if item.Kind != ItemProp {
			continue
		}
		ok, err := pred(item.Prop)
		if err != nil {
			return Prop{}, fmt.Errorf("dtb: property predicate: %w", err)
		}
		if ok {
			return item.Prop, nil
		}
	}
}
