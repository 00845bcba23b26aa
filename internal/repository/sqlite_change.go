package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/actlog/internal/db"
	"github.com/alexanderramin/actlog/internal/domain"
)

// SQLiteChangeRepo implements ChangeRepo on the change_log table.
type SQLiteChangeRepo struct {
	db db.DBTX
}

func NewSQLiteChangeRepo(db db.DBTX) *SQLiteChangeRepo {
	return &SQLiteChangeRepo{db: db}
}

func (r *SQLiteChangeRepo) Create(ctx context.Context, e *domain.ChangeEvent) error {
	query := `INSERT INTO change_log (id, kind, path, name, changed_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		string(e.Kind),
		e.Path.String(),
		e.Name,
		formatTime(e.At),
	)
	if err != nil {
		return fmt.Errorf("inserting change event: %w", err)
	}
	return nil
}

func (r *SQLiteChangeRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ChangeEvent, error) {
	query := `SELECT id, kind, path, name, changed_at
		FROM change_log
		ORDER BY changed_at DESC, rowid DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing change events: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChangeEvent
	for rows.Next() {
		var e domain.ChangeEvent
		var kind, path, at string
		if err := rows.Scan(&e.ID, &kind, &path, &e.Name, &at); err != nil {
			return nil, fmt.Errorf("scanning change event: %w", err)
		}
		ts, err := time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("parsing changed_at: %w", err)
		}
		e.Kind = domain.ChangeKind(kind)
		e.Path = domain.ParsePath(path)
		e.At = ts
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change events: %w", err)
	}
	return out, nil
}
