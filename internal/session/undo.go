package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/actlog/internal/cli/formatter"
	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/tree"
)

// Undo reverts the last record after confirmation. Without a last record it
// fails with ErrPolicyViolation. The slot is emptied once the user has
// answered, whatever the outcome; a record whose path no longer names a
// leaf fails with ErrNotFound and leaves the data untouched.
func (s *Session) Undo(ctx context.Context) (err error) {
	if s.last == nil {
		return fmt.Errorf("there is no last record to undo: %w", domain.ErrPolicyViolation)
	}
	rec := s.last

	answer, err := s.prompt.AskChoice(ctx,
		fmt.Sprintf("Undoing: %s. Are you sure?", formatter.FormatRecord(rec, s.cfg.RootLabel)),
		yesNo)
	if err != nil {
		return err
	}
	s.last = nil
	if answer != answerYes {
		fmt.Fprintln(s.out, "Undo cancelled.")
		return nil
	}

	fields := map[string]any{"path": rec.Path.String(), "minutes": rec.Delta}
	defer s.observe(ctx, "undo", time.Now(), fields, &err)

	leaf, err := tree.ResolveLeaf(s.data, rec.Path)
	if err != nil {
		return fmt.Errorf("undoing %s: %w", s.label(rec.Path), err)
	}
	if err := leaf.Accumulate(-rec.Delta); err != nil {
		return err
	}
	if err := s.history.MarkUndone(ctx, rec.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("logging undo: %w", err)
	}

	fmt.Fprintf(s.out, "Removed %s from %s.\n", formatter.FormatMinutes(rec.Delta), s.label(rec.Path))
	return nil
}
