package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/actlog/internal/cli/formatter"
	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/tree"
	"github.com/google/uuid"
)

// cursor is the navigation state of a cycle. With leaf empty the user is
// choosing among branch's children; otherwise an amount for leaf is awaited.
type cursor struct {
	branch *tree.Node
	path   domain.Path
	leaf   string
}

func (c cursor) leafPath() domain.Path {
	return c.path.Child(c.leaf)
}

// Cycle runs one recording cycle from the options branch. It returns nil
// after a recording or an UNDO; recoverable errors are reported and the
// same state is prompted again.
func (s *Session) Cycle(ctx context.Context) error {
	options, ok := s.data.Child(s.cfg.OptionsKey)
	if !ok || !options.IsBranch() {
		return fmt.Errorf("data has no %q options: %w", s.cfg.OptionsKey, domain.ErrTypeMismatch)
	}
	cur := &cursor{branch: options, path: domain.Path{s.cfg.OptionsKey}}

	for {
		var done bool
		var err error
		if cur.leaf == "" {
			done, err = s.atBranch(ctx, cur)
		} else {
			done, err = s.awaitingAmount(ctx, cur)
		}
		if err != nil {
			if !domain.IsRecoverable(err) {
				return err
			}
			s.report(err)
			continue
		}
		if done {
			return nil
		}
	}
}

func (s *Session) atBranch(ctx context.Context, cur *cursor) (bool, error) {
	fmt.Fprint(s.out, formatter.FormatOptions(s.label(cur.path), cur.branch))

	input, err := s.prompt.AskFreeText(ctx,
		"Choose one of the options to record, or type a new one to add it to your schema.")
	if err != nil {
		return false, err
	}
	if handled, done, err := s.command(ctx, input); handled {
		return done, err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		input = "1"
	}
	n, convErr := strconv.Atoi(input)
	if errors.Is(convErr, strconv.ErrRange) {
		return false, fmt.Errorf("%s is not a valid option: %w", input, domain.ErrInvalidInput)
	}
	if convErr != nil {
		return false, s.addLeaf(ctx, cur.branch, cur.path, input)
	}

	name, ok := tree.IndexChildren(cur.branch)[n]
	if !ok {
		return false, fmt.Errorf("%d is not a valid option: %w", n, domain.ErrInvalidInput)
	}
	child, _ := cur.branch.Child(name)
	if child.IsBranch() {
		cur.branch = child
		cur.path = cur.path.Child(name)
		return false, nil
	}
	cur.leaf = name
	return false, nil
}

func (s *Session) awaitingAmount(ctx context.Context, cur *cursor) (bool, error) {
	input, err := s.prompt.AskFreeText(ctx, fmt.Sprintf(
		"How many minutes did you do this for? Last record: %s -- or you may add a new sub-option.",
		formatter.FormatRecord(s.last, s.cfg.RootLabel)))
	if err != nil {
		return false, err
	}
	if handled, done, err := s.command(ctx, input); handled {
		return done, err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		minutes, err := s.elapsedMinutes()
		if err != nil {
			return false, err
		}
		return true, s.record(ctx, cur.leafPath(), minutes)
	}

	minutes, convErr := strconv.Atoi(input)
	if errors.Is(convErr, strconv.ErrRange) {
		return false, fmt.Errorf("%s minutes is out of range: %w", input, domain.ErrInvalidInput)
	}
	if convErr == nil {
		if minutes < 0 {
			return false, fmt.Errorf("minutes must not be negative, got %d: %w", minutes, domain.ErrInvalidInput)
		}
		return true, s.record(ctx, cur.leafPath(), minutes)
	}

	return false, s.expandLeaf(ctx, cur, input)
}

// elapsedMinutes measures the time since the last record, capped at the
// reminder interval, in whole minutes.
func (s *Session) elapsedMinutes() (int, error) {
	if s.interval <= 0 {
		return 0, fmt.Errorf("without a reminder interval, an empty amount cannot be recorded: %w", domain.ErrInvalidInput)
	}
	if s.last == nil {
		return 0, fmt.Errorf("no last record to measure elapsed time from: %w", domain.ErrInvalidInput)
	}
	elapsed := s.clock.Now().Sub(s.last.Timestamp)
	if elapsed > s.interval {
		elapsed = s.interval
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed / time.Minute), nil
}

// record adds minutes to the leaf at path and makes the result the
// undoable last record.
func (s *Session) record(ctx context.Context, path domain.Path, minutes int) (err error) {
	fields := map[string]any{"path": path.String(), "minutes": minutes}
	defer s.observe(ctx, "record", time.Now(), fields, &err)

	leaf, err := tree.ResolveLeaf(s.data, path)
	if err != nil {
		return err
	}
	if err := leaf.Accumulate(minutes); err != nil {
		return err
	}

	rec := &domain.Record{
		ID:        uuid.New().String(),
		Path:      path,
		Delta:     minutes,
		Timestamp: s.clock.Now(),
	}
	s.last = rec
	if err := s.history.Append(ctx, rec); err != nil {
		return fmt.Errorf("logging record: %w", err)
	}

	fmt.Fprintf(s.out, "Recorded %s under %s.\n", formatter.FormatMinutes(minutes), s.label(path))
	return nil
}

// command runs HELP, PRINT and UNDO. handled is false for any other input.
// UNDO ends the cycle so its result is saved.
func (s *Session) command(ctx context.Context, input string) (handled, done bool, err error) {
	switch s.cfg.Command(input) {
	case commandHelp:
		fmt.Fprintln(s.out, formatter.FormatHelp(s.cfg.Aliases))
		return true, false, nil
	case commandPrint:
		out, err := formatter.FormatCategoryTree(s.data, s.cfg.RootLabel)
		if err != nil {
			return true, false, err
		}
		fmt.Fprint(s.out, out)
		return true, false, nil
	case commandUndo:
		if err := s.Undo(ctx); err != nil {
			return true, false, err
		}
		return true, true, nil
	default:
		return false, false, nil
	}
}
