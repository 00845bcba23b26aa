package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/actlog/internal/db"
	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/repository"
	"github.com/google/uuid"
)

type historyService struct {
	records  repository.RecordRepo
	changes  repository.ChangeRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewHistoryService(
	records repository.RecordRepo,
	changes repository.ChangeRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) HistoryService {
	return &historyService{
		records:  records,
		changes:  changes,
		uow:      uow,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *historyService) Append(ctx context.Context, rec *domain.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	return s.records.Create(ctx, rec)
}

// MarkUndone stamps the record as undone. A missing or already undone
// record fails with domain.ErrNotFound.
func (s *historyService) MarkUndone(ctx context.Context, id string) (err error) {
	fields := map[string]any{"id": id}
	defer s.observe(ctx, "mark_undone", time.Now(), fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRecords := repository.NewSQLiteRecordRepo(tx)

		entry, err := txRecords.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fields["path"] = entry.Path.String()
		fields["minutes"] = entry.Delta
		if entry.UndoneAt != nil {
			return fmt.Errorf("record %s is already undone: %w", id, domain.ErrNotFound)
		}
		return txRecords.MarkUndone(ctx, id, s.now())
	})
}

func (s *historyService) NoteChange(ctx context.Context, kind domain.ChangeKind, path domain.Path, name string) error {
	return s.changes.Create(ctx, &domain.ChangeEvent{
		ID:   uuid.New().String(),
		Kind: kind,
		Path: path,
		Name: name,
		At:   s.now(),
	})
}

func (s *historyService) RelabelExpanded(ctx context.Context, leaf domain.Path, sibling string) (err error) {
	fields := map[string]any{
		"path":    leaf.String(),
		"sibling": sibling,
	}
	defer s.observe(ctx, "relabel_expanded", time.Now(), fields, &err)

	if len(leaf) == 0 {
		return fmt.Errorf("relabeling the root: %w", domain.ErrInvalidInput)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRecords := repository.NewSQLiteRecordRepo(tx)
		txChanges := repository.NewSQLiteChangeRepo(tx)

		n, err := txRecords.Relabel(ctx, leaf, leaf.Child(leaf.Last()))
		if err != nil {
			return err
		}
		fields["relabeled"] = n

		return txChanges.Create(ctx, &domain.ChangeEvent{
			ID:   uuid.New().String(),
			Kind: domain.ChangeExpandLeaf,
			Path: leaf,
			Name: sibling,
			At:   s.now(),
		})
	})
}

func (s *historyService) ListRecent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	return s.records.ListRecent(ctx, limit)
}

func (s *historyService) ListChanges(ctx context.Context, limit int) ([]*domain.ChangeEvent, error) {
	return s.changes.ListRecent(ctx, limit)
}

func (s *historyService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
