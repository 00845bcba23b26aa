package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/tree"
)

// TreeRepo loads and saves one persisted tree (schema or data).
// Load fails with domain.ErrFileAbsent when nothing has been saved yet.
type TreeRepo interface {
	Load(ctx context.Context) (*tree.Node, error)
	Save(ctx context.Context, root *tree.Node) error
}

type RecordRepo interface {
	Create(ctx context.Context, r *domain.Record) error
	GetByID(ctx context.Context, id string) (*domain.HistoryEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
	MarkUndone(ctx context.Context, id string, at time.Time) error
	Relabel(ctx context.Context, from, to domain.Path) (int64, error)
}

type ChangeRepo interface {
	Create(ctx context.Context, e *domain.ChangeEvent) error
	ListRecent(ctx context.Context, limit int) ([]*domain.ChangeEvent, error)
}
