package domain

import (
	"fmt"
	"time"
)

// Record captures a single accumulation event. Only the most recent Record
// of a session is eligible for undo.
type Record struct {
	ID        string
	Path      Path
	Delta     int
	Timestamp time.Time
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %d at %s", r.Path, r.Delta, r.Timestamp.Format("2006-01-02 15:04"))
}

// ChangeKind names a structural mutation of the category tree.
type ChangeKind string

const (
	ChangeAddLeaf    ChangeKind = "add"
	ChangeExpandLeaf ChangeKind = "expand"
)

// ChangeEvent describes an applied structural mutation. Path addresses the
// branch (add) or the expanded leaf (expand); Name is the new child.
type ChangeEvent struct {
	ID   string
	Kind ChangeKind
	Path Path
	Name string
	At   time.Time
}

// HistoryEntry is a persisted Record with its undo status.
type HistoryEntry struct {
	Record
	UndoneAt *time.Time
}
