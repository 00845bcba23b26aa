package tree

import (
	"fmt"

	"github.com/alexanderramin/actlog/internal/domain"
)

// Resolve walks path from root. It fails with ErrNotFound when a segment is
// absent or a non-terminal segment is a leaf.
func Resolve(root *Node, path domain.Path) (*Node, error) {
	cur := root
	for i, seg := range path {
		if !cur.IsBranch() {
			return nil, fmt.Errorf("%s is a %s: %w", path[:i], cur.Kind(), domain.ErrNotFound)
		}
		next, ok := cur.children[seg]
		if !ok {
			return nil, fmt.Errorf("no option %q at %s: %w", seg, path[:i], domain.ErrNotFound)
		}
		cur = next
	}
	if cur.Kind() == KindInvalid {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	return cur, nil
}

// ResolveLeaf is Resolve restricted to leaves.
func ResolveLeaf(root *Node, path domain.Path) (*Node, error) {
	n, err := Resolve(root, path)
	if err != nil {
		return nil, err
	}
	if !n.IsLeaf() {
		return nil, fmt.Errorf("%s is a %s: %w", path, n.Kind(), domain.ErrNotFound)
	}
	return n, nil
}

// ChildNames lists a branch's children in insertion order. The slice is
// freshly allocated on every call.
func ChildNames(n *Node) []string {
	if !n.IsBranch() {
		return nil
	}
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}

// IndexChildren maps 1-based menu ordinals to child names.
func IndexChildren(n *Node) map[int]string {
	names := ChildNames(n)
	out := make(map[int]string, len(names))
	for i, name := range names {
		out[i+1] = name
	}
	return out
}

// Walk visits every node depth-first in insertion order. fn receives the
// path relative to root; returning false skips the node's children.
func Walk(root *Node, fn func(path domain.Path, n *Node) bool) {
	walk(root, nil, fn)
}

func walk(n *Node, path domain.Path, fn func(domain.Path, *Node) bool) {
	if !fn(path, n) || !n.IsBranch() {
		return
	}
	for _, name := range n.names {
		walk(n.children[name], path.Child(name), fn)
	}
}
