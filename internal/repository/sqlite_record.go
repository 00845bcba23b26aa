package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/actlog/internal/db"
	"github.com/alexanderramin/actlog/internal/domain"
)

// SQLiteRecordRepo implements RecordRepo on the record_log table.
type SQLiteRecordRepo struct {
	db db.DBTX
}

func NewSQLiteRecordRepo(db db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: db}
}

func (r *SQLiteRecordRepo) Create(ctx context.Context, rec *domain.Record) error {
	query := `INSERT INTO record_log (id, path, delta, recorded_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Path.String(),
		rec.Delta,
		formatTime(rec.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

func (r *SQLiteRecordRepo) GetByID(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	query := `SELECT id, path, delta, recorded_at, undone_at FROM record_log WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteRecordRepo) ListRecent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	query := `SELECT id, path, delta, recorded_at, undone_at
		FROM record_log
		ORDER BY recorded_at DESC, rowid DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var out []*domain.HistoryEntry
	for rows.Next() {
		e, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return out, nil
}

func (r *SQLiteRecordRepo) MarkUndone(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE record_log SET undone_at = ? WHERE id = ? AND undone_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("marking record undone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking record undone: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Relabel moves every record stored at path from to path to.
func (r *SQLiteRecordRepo) Relabel(ctx context.Context, from, to domain.Path) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE record_log SET path = ? WHERE path = ?`, to.String(), from.String())
	if err != nil {
		return 0, fmt.Errorf("relabeling records: %w", err)
	}
	return res.RowsAffected()
}

func scanRecord(scan func(dest ...any) error) (*domain.HistoryEntry, error) {
	var e domain.HistoryEntry
	var path, recordedAt string
	var undoneAt sql.NullString

	if err := scan(&e.ID, &path, &e.Delta, &recordedAt, &undoneAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	ts, err := time.Parse(timeLayout, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing recorded_at: %w", err)
	}
	e.Path = domain.ParsePath(path)
	e.Timestamp = ts
	e.UndoneAt = parseNullableTime(undoneAt)
	return &e, nil
}
