package testutil

import (
	"testing"
	"time"

	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/tree"
	"github.com/google/uuid"
)

// FixedNow is the reference instant used by fixtures and FakeClock.
var FixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// MustTree decodes a JSON literal into a tree or fails the test.
func MustTree(t testing.TB, src string) *tree.Node {
	t.Helper()
	n, err := tree.Unmarshal([]byte(src))
	if err != nil {
		t.Fatalf("decoding tree %s: %v", src, err)
	}
	return n
}

// TreeJSON renders a data tree as compact JSON for assertions.
func TreeJSON(t testing.TB, n *tree.Node) string {
	t.Helper()
	out, err := tree.Marshal(n, tree.StyleData)
	if err != nil {
		t.Fatalf("encoding tree: %v", err)
	}
	compact := make([]byte, 0, len(out))
	for _, b := range out {
		if b != ' ' && b != '\n' {
			compact = append(compact, b)
		}
	}
	return string(compact)
}

// Record options
type RecordOption func(*domain.Record)

func WithTimestamp(ts time.Time) RecordOption {
	return func(r *domain.Record) {
		r.Timestamp = ts
	}
}

func NewTestRecord(path string, delta int, opts ...RecordOption) *domain.Record {
	r := &domain.Record{
		ID:        uuid.New().String(),
		Path:      domain.ParsePath(path),
		Delta:     delta,
		Timestamp: FixedNow,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestChange(kind domain.ChangeKind, path, name string, at time.Time) *domain.ChangeEvent {
	return &domain.ChangeEvent{
		ID:   uuid.New().String(),
		Kind: kind,
		Path: domain.ParsePath(path),
		Name: name,
		At:   at,
	}
}
