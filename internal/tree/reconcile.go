package tree

import (
	"fmt"

	"github.com/alexanderramin/actlog/internal/domain"
)

// KeysEqual reports whether every key of a exists in b, recursively. The
// check is a subset test; use Congruent for equality in both directions.
// Every sibling is visited, and a branch in a facing a leaf in b is a mismatch.
func KeysEqual(a, b *Node) bool {
	if !a.IsBranch() {
		return true
	}
	if !b.IsBranch() {
		return false
	}
	for _, name := range a.names {
		other, ok := b.children[name]
		if !ok {
			return false
		}
		if a.children[name].IsBranch() && !KeysEqual(a.children[name], other) {
			return false
		}
	}
	return true
}

// Congruent reports whether a and b have the same keys at every level.
func Congruent(a, b *Node) bool {
	return KeysEqual(a, b) && KeysEqual(b, a)
}

// DeriveSchema returns a tree with the shape of data and every leaf reset.
// The result shares no nodes with data.
func DeriveSchema(data *Node) *Node {
	if !data.IsBranch() {
		return NewLeaf(0)
	}
	out := NewBranch()
	for _, name := range data.names {
		_ = out.Insert(name, DeriveSchema(data.children[name]))
	}
	return out
}

// CollapseBranchValue sums every leaf reachable from n.
func CollapseBranchValue(n *Node) (int, error) {
	switch n.Kind() {
	case KindLeaf:
		return n.value, nil
	case KindBranch:
		sum := 0
		for _, name := range n.names {
			v, err := CollapseBranchValue(n.children[name])
			if err != nil {
				return 0, fmt.Errorf("at %q: %w", name, err)
			}
			sum += v
		}
		return sum, nil
	default:
		return 0, fmt.Errorf("collapsing %s node: %w", n.Kind(), domain.ErrTypeMismatch)
	}
}

// ConformData rebuilds data in the shape of schema. Matching leaves keep
// their values, a data branch standing where schema has a leaf collapses to
// its sum, missing keys start at zero and keys absent from schema are dropped.
func ConformData(schema, data *Node) (*Node, error) {
	if !schema.IsBranch() {
		return nil, fmt.Errorf("schema root is a %s: %w", schema.Kind(), domain.ErrTypeMismatch)
	}
	out := NewBranch()
	for _, name := range schema.names {
		sub := schema.children[name]
		existing, ok := data.Child(name)

		var next *Node
		switch {
		case sub.IsBranch():
			from := NewBranch()
			if ok && existing.IsBranch() {
				from = existing
			}
			conformed, err := ConformData(sub, from)
			if err != nil {
				return nil, fmt.Errorf("at %q: %w", name, err)
			}
			next = conformed
		case !ok:
			next = NewLeaf(0)
		default:
			total, err := CollapseBranchValue(existing)
			if err != nil {
				return nil, fmt.Errorf("at %q: %w", name, err)
			}
			next = NewLeaf(total)
		}
		_ = out.Insert(name, next)
	}
	return out, nil
}

// Missing lists the paths present in a that b lacks, in a's order. A branch
// in a facing a leaf in b is reported at the branch. Descendants of a
// reported path are not listed again.
func Missing(a, b *Node) []domain.Path {
	var out []domain.Path
	Walk(a, func(path domain.Path, n *Node) bool {
		if len(path) == 0 {
			return true
		}
		other, err := Resolve(b, path)
		if err != nil {
			out = append(out, path)
			return false
		}
		if n.IsBranch() && !other.IsBranch() {
			out = append(out, path)
			return false
		}
		return true
	})
	return out
}
