package domain

import "errors"

var (
	// ErrNotFound indicates a path does not resolve in a tree, either on lookup
	// or when undoing a record whose path was invalidated by a later mutation.
	ErrNotFound = errors.New("not found")

	// ErrStructuralMismatch indicates the schema and data trees are not key-congruent.
	ErrStructuralMismatch = errors.New("schema and data differ")

	// ErrPolicyViolation indicates an operation that is structurally possible
	// but not allowed, such as expanding the primary option.
	ErrPolicyViolation = errors.New("not allowed")

	// ErrTypeMismatch indicates a value that is neither a branch nor an integer leaf.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidInput indicates user input that cannot be applied in the current state.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIO indicates a storage read or write failure.
	ErrIO = errors.New("storage failure")

	// ErrFileAbsent indicates a tree file does not exist yet.
	ErrFileAbsent = errors.New("file absent")

	// ErrStorageDeclined indicates the user refused to create missing storage.
	ErrStorageDeclined = errors.New("storage creation declined")
)

// IsRecoverable reports whether err can be handled by reporting it and
// re-prompting the current interaction state.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStructuralMismatch) ||
		errors.Is(err, ErrPolicyViolation) ||
		errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrInvalidInput)
}
