package dtb

import (
	"fmt"
	"io"
)

// WalkNodes visits every node in depth-first pre-order without building any
// auxiliary state. A non-nil error from fn stops the walk and is returned.
func (t *Tree) WalkNodes(fn func(n Node) error) error {
	it := t.Nodes()
	for {
		n, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(n); err != nil {
			return err
		}
	}
}

// Walk visits every node in depth-first pre-order, passing the full ancestor
// path: path[0] is the root and path[len(path)-1] is the visited node. The
// slice is reused between calls and must not be retained. Maintaining the
// ancestor stack needs heap memory, so Walk requires Options.EnableAlloc;
// WalkNodes covers path-free traversal without it.
func (t *Tree) Walk(fn func(path []Node) error) error {
	if !t.opts.EnableAlloc {
		return fmt.Errorf("dtb: Walk: %w", ErrAllocRequired)
	}
	var stack []Node
	it := t.Nodes()
	for {
		n, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		// Cursors carry no parent pointer; depth alone reconstructs the
		// ancestry because pre-order yields a node right after its parent.
		if n.depth > len(stack) {
			return fmt.Errorf("dtb: node at 0x%x skips depth %d: %w",
				n.off, len(stack), ErrBadStructure)
		}
		stack = append(stack[:n.depth], n)
		if err := fn(stack); err != nil {
			return err
		}
	}
}

// NodePath materializes the ancestor chain of n, root first and n last.
// Requires Options.EnableAlloc.
func (t *Tree) NodePath(n Node) ([]Node, error) {
	if !t.opts.EnableAlloc {
		return nil, fmt.Errorf("dtb: NodePath: %w", ErrAllocRequired)
	}
	var found []Node
	err := t.Walk(func(path []Node) error {
		if path[len(path)-1].off == n.off {
			found = append([]Node(nil), path...)
			return errStopWalk
		}
		return nil
	})
	if err != nil && err != errStopWalk {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("dtb: node at 0x%x: %w", n.off, ErrNotFound)
	}
	return found, nil
}

// errStopWalk is an internal signal used to end a walk early.
var errStopWalk = fmt.Errorf("dtb: stop walk")
