package dtb

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// NodeAtPath resolves an absolute, slash-separated path such as
// "/soc/uart@10000000". Each component is matched against the direct children
// of the node resolved so far. A component with a unit address matches
// exactly; a component without one also matches a child whose name differs
// only by its "@address" suffix, in which case the first such child in
// on-disk order wins. "/" and "" resolve to the root.
func (t *Tree) NodeAtPath(path string) (Node, error) {
	cur, err := t.Root()
	if err != nil {
		return Node{}, err
	}
	rest := strings.Trim(path, "/")
	for rest != "" {
		var seg string
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			seg, rest = rest[:i], rest[i+1:]
		} else {
			seg, rest = rest, ""
		}
		if seg == "" {
			continue
		}
		cur, err = childByName(cur, seg)
		if err != nil {
			return Node{}, fmt.Errorf("dtb: path %q at component %q: %w", path, seg, err)
		}
	}
	return cur, nil
}

func childByName(parent Node, seg string) (Node, error) {
	segHasAddr := strings.IndexByte(seg, '@') >= 0
	it := parent.Children()
	for {
		child, err := it.Next()
		if err == io.EOF {
			return Node{}, ErrNotFound
		}
		if err != nil {
			return Node{}, err
		}
		name, err := child.NameBytes()
		if err != nil {
			return Node{}, err
		}
		if string(name) == seg {
			return child, nil
		}
		if !segHasAddr {
			if i := bytes.IndexByte(name, '@'); i >= 0 && string(name[:i]) == seg {
				return child, nil
			}
		}
	}
}
