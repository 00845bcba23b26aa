package service

import (
	"context"

	"github.com/alexanderramin/actlog/internal/domain"
)

// NoopHistory is used when the history database is disabled.
type NoopHistory struct{}

var _ HistoryService = NoopHistory{}

func (NoopHistory) Append(context.Context, *domain.Record) error { return nil }
func (NoopHistory) MarkUndone(context.Context, string) error     { return nil }
func (NoopHistory) NoteChange(context.Context, domain.ChangeKind, domain.Path, string) error {
	return nil
}
func (NoopHistory) RelabelExpanded(context.Context, domain.Path, string) error { return nil }
func (NoopHistory) ListRecent(context.Context, int) ([]*domain.HistoryEntry, error) {
	return nil, nil
}
func (NoopHistory) ListChanges(context.Context, int) ([]*domain.ChangeEvent, error) {
	return nil, nil
}
