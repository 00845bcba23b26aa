package tree

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/actlog/internal/domain"
)

// ValidateName rejects names that cannot be addressed by a dotted path.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("category name must not be empty: %w", domain.ErrInvalidInput)
	}
	if strings.Contains(name, domain.PathSeparator) {
		return fmt.Errorf("category name %q must not contain %q: %w", name, domain.PathSeparator, domain.ErrInvalidInput)
	}
	return nil
}

// AddLeaf inserts a zero leaf named name under branch.
func AddLeaf(branch *Node, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return branch.Insert(name, NewLeaf(0))
}

// IsProtected reports whether name is the primary option of branch, i.e.
// its first child. The primary option can never be expanded.
func IsProtected(branch *Node, name string) bool {
	names := ChildNames(branch)
	return len(names) > 0 && names[0] == name
}

// CheckExpand validates an expansion without applying it.
func CheckExpand(branch *Node, leafName, newSibling string) error {
	if !branch.IsBranch() {
		return fmt.Errorf("expanding under a %s: %w", branch.Kind(), domain.ErrTypeMismatch)
	}
	leaf, ok := branch.children[leafName]
	if !ok {
		return fmt.Errorf("no option %q: %w", leafName, domain.ErrNotFound)
	}
	if !leaf.IsLeaf() {
		return fmt.Errorf("option %q is already a branch: %w", leafName, domain.ErrInvalidInput)
	}
	if IsProtected(branch, leafName) {
		return fmt.Errorf("cannot expand the first option %q: %w", leafName, domain.ErrPolicyViolation)
	}
	if err := ValidateName(newSibling); err != nil {
		return err
	}
	if newSibling == leafName {
		return fmt.Errorf("new option %q must differ from %q: %w", newSibling, leafName, domain.ErrInvalidInput)
	}
	return nil
}

// ExpandLeaf turns the leaf at leafName into a branch holding the old value
// under leafName followed by a zero leaf newSibling.
func ExpandLeaf(branch *Node, leafName, newSibling string) error {
	if err := CheckExpand(branch, leafName, newSibling); err != nil {
		return err
	}
	expanded := NewBranch()
	_ = expanded.Insert(leafName, NewLeaf(branch.children[leafName].value))
	_ = expanded.Insert(newSibling, NewLeaf(0))
	branch.replace(leafName, expanded)
	return nil
}
