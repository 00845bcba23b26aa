package service

import (
	"context"

	"github.com/alexanderramin/actlog/internal/domain"
)

// HistoryService persists the record and change logs that back the
// `history` command. It never influences the in-memory trees.
type HistoryService interface {
	Append(ctx context.Context, rec *domain.Record) error
	MarkUndone(ctx context.Context, id string) error
	NoteChange(ctx context.Context, kind domain.ChangeKind, path domain.Path, name string) error
	// RelabelExpanded moves records logged against leaf to the child that
	// keeps its value after an expansion, and logs the expansion.
	RelabelExpanded(ctx context.Context, leaf domain.Path, sibling string) error
	ListRecent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
	ListChanges(ctx context.Context, limit int) ([]*domain.ChangeEvent, error)
}
