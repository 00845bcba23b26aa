// Package tree implements the category tree shared by the schema and data
// files: an insertion-ordered tagged union of branches and integer leaves.
package tree

import (
	"fmt"

	"github.com/alexanderramin/actlog/internal/domain"
)

// Kind distinguishes branches from leaves.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindLeaf
	KindBranch
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindBranch:
		return "branch"
	default:
		return "invalid"
	}
}

// Node is either a Branch with named children or a Leaf holding cumulative
// minutes. The zero Node is invalid.
type Node struct {
	kind     Kind
	value    int
	names    []string
	children map[string]*Node
}

// NewLeaf returns a leaf holding value.
func NewLeaf(value int) *Node {
	return &Node{kind: KindLeaf, value: value}
}

// NewBranch returns an empty branch.
func NewBranch() *Node {
	return &Node{kind: KindBranch, children: map[string]*Node{}}
}

func (n *Node) Kind() Kind {
	if n == nil {
		return KindInvalid
	}
	return n.kind
}

func (n *Node) IsLeaf() bool   { return n.Kind() == KindLeaf }
func (n *Node) IsBranch() bool { return n.Kind() == KindBranch }

// Value returns a leaf's accumulator. Branches report 0.
func (n *Node) Value() int {
	if !n.IsLeaf() {
		return 0
	}
	return n.value
}

// Len returns the number of children of a branch.
func (n *Node) Len() int {
	if !n.IsBranch() {
		return 0
	}
	return len(n.names)
}

// Child returns the named child of a branch.
func (n *Node) Child(name string) (*Node, bool) {
	if !n.IsBranch() {
		return nil, false
	}
	c, ok := n.children[name]
	return c, ok
}

// Insert adds child under name. Fails if n is not a branch, the name is
// empty, or the name is already taken.
func (n *Node) Insert(name string, child *Node) error {
	if !n.IsBranch() {
		return fmt.Errorf("inserting %q into %s: %w", name, n.Kind(), domain.ErrTypeMismatch)
	}
	if name == "" {
		return fmt.Errorf("category name must not be empty: %w", domain.ErrInvalidInput)
	}
	if _, exists := n.children[name]; exists {
		return fmt.Errorf("option %q already exists: %w", name, domain.ErrInvalidInput)
	}
	n.names = append(n.names, name)
	n.children[name] = child
	return nil
}

// replace swaps the child stored at an existing name, keeping its position.
func (n *Node) replace(name string, child *Node) {
	n.children[name] = child
}

// Accumulate adds delta to a leaf.
func (n *Node) Accumulate(delta int) error {
	if !n.IsLeaf() {
		return fmt.Errorf("accumulating into %s: %w", n.Kind(), domain.ErrTypeMismatch)
	}
	n.value += delta
	return nil
}

// Clone returns a deep copy sharing no nodes with n.
func (n *Node) Clone() *Node {
	switch n.Kind() {
	case KindLeaf:
		return NewLeaf(n.value)
	case KindBranch:
		out := NewBranch()
		for _, name := range n.names {
			_ = out.Insert(name, n.children[name].Clone())
		}
		return out
	default:
		return &Node{}
	}
}

// Equal reports whether a and b have the same shape, order and leaf values.
func Equal(a, b *Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindLeaf:
		return a.value == b.value
	case KindBranch:
		if len(a.names) != len(b.names) {
			return false
		}
		for i, name := range a.names {
			if b.names[i] != name || !Equal(a.children[name], b.children[name]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
