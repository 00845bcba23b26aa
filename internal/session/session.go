// Package session runs the interactive recording dialogue: it opens and
// reconciles the schema and data trees, walks the category tree one input
// at a time, records minutes, applies structural changes and undoes the
// last recording.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/actlog/internal/cli/formatter"
	"github.com/alexanderramin/actlog/internal/config"
	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/repository"
	"github.com/alexanderramin/actlog/internal/service"
	"github.com/alexanderramin/actlog/internal/tree"
)

// Deps are the collaborators of a Session. Clock, History, Observer and Out
// default to the system clock, no history, no logging and io.Discard.
type Deps struct {
	Config   config.Config
	Prompter Prompter
	Out      io.Writer
	Clock    Clock
	Schema   repository.TreeRepo
	Data     repository.TreeRepo
	History  service.HistoryService
	Observer service.UseCaseObserver
}

// Session owns the schema tree, the data tree and the last-record slot for
// one run of the dialogue.
type Session struct {
	cfg        config.Config
	prompt     Prompter
	out        io.Writer
	clock      Clock
	schemaRepo repository.TreeRepo
	dataRepo   repository.TreeRepo
	history    service.HistoryService
	observer   service.UseCaseObserver

	interval time.Duration
	schema   *tree.Node
	data     *tree.Node
	last     *domain.Record
}

func New(d Deps) *Session {
	s := &Session{
		cfg:        d.Config,
		prompt:     d.Prompter,
		out:        d.Out,
		clock:      d.Clock,
		schemaRepo: d.Schema,
		dataRepo:   d.Data,
		history:    d.History,
		observer:   d.Observer,
		interval:   d.Config.ReminderInterval(),
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.history == nil {
		s.history = service.NoopHistory{}
	}
	if s.observer == nil {
		s.observer = service.NoopUseCaseObserver{}
	}
	return s
}

func (s *Session) Schema() *tree.Node { return s.schema }
func (s *Session) Data() *tree.Node   { return s.data }

// LastRecord is the record an UNDO would revert, or nil.
func (s *Session) LastRecord() *domain.Record { return s.last }

// Interval caps elapsed-time recordings; zero disables them.
func (s *Session) Interval() time.Duration { return s.interval }

// Run greets the user, opens the trees and records cycles until input ends.
// End of input is a clean exit; storage failures and a declined file
// creation are returned.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, formatter.Bold("Welcome to actlog!"))
	fmt.Fprintln(s.out, formatter.FormatHelp(s.cfg.Aliases))

	if err := s.Open(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Cycle(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := s.Commit(ctx); err != nil {
			return err
		}
	}
}

// Open settles the reminder interval, loads both trees (offering to create
// missing files) and reconciles them.
func (s *Session) Open(ctx context.Context) error {
	if s.cfg.ReminderMinutes == config.ReminderUnset {
		if err := s.askReminder(ctx); err != nil {
			return err
		}
	}

	schema, err := s.loadOrCreate(ctx, "schema", s.schemaRepo)
	if err != nil {
		return err
	}
	data, err := s.loadOrCreate(ctx, "data", s.dataRepo)
	if err != nil {
		return err
	}
	s.schema, s.data = schema, data

	if _, err := s.ensureOptions(); err != nil {
		return err
	}
	return s.Reconcile(ctx)
}

func (s *Session) askReminder(ctx context.Context) error {
	for {
		answer, err := s.prompt.AskFreeText(ctx,
			"How often, in minutes, would you like to receive reminders? Choose 0 for no reminders.")
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(answer))
		if convErr != nil || n < 0 {
			s.report(fmt.Errorf("%q is not a number of minutes: %w", answer, domain.ErrInvalidInput))
			continue
		}
		s.interval = time.Duration(n) * time.Minute
		return nil
	}
}

func (s *Session) loadOrCreate(ctx context.Context, kind string, repo repository.TreeRepo) (*tree.Node, error) {
	root, err := repo.Load(ctx)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, domain.ErrFileAbsent) {
		return nil, err
	}

	answer, err := s.prompt.AskChoice(ctx,
		fmt.Sprintf("You don't seem to have a %s file yet. Would you like to create a default file?", kind),
		yesNo)
	if err != nil {
		return nil, err
	}
	if answer != answerYes {
		return nil, fmt.Errorf("no %s file: %w", kind, domain.ErrStorageDeclined)
	}

	root = s.cfg.DefaultTree()
	if err := repo.Save(ctx, root); err != nil {
		return nil, err
	}
	return root, nil
}

// ensureOptions gives the data tree its navigation branch when missing.
func (s *Session) ensureOptions() (bool, error) {
	n, ok := s.data.Child(s.cfg.OptionsKey)
	if !ok {
		return true, s.data.Insert(s.cfg.OptionsKey, tree.NewBranch())
	}
	if !n.IsBranch() {
		return false, fmt.Errorf("%q in the data file must hold options, found a %s: %w",
			s.cfg.OptionsKey, n.Kind(), domain.ErrTypeMismatch)
	}
	return false, nil
}

// Reconcile asks the user which side wins while schema and data differ.
// SCHEMA rewrites the schema from the data; DATA reshapes the data to the
// schema once the user confirms a backup exists.
func (s *Session) Reconcile(ctx context.Context) (err error) {
	if tree.Congruent(s.schema, s.data) {
		return nil
	}
	fields := map[string]any{}
	defer s.observe(ctx, "reconcile", time.Now(), fields, &err)

	for {
		choice, err := s.prompt.AskChoice(ctx,
			"There is a mismatch between your schema and data. Would you like to update the schema or the data?",
			[]string{answerSchema, answerData})
		if err != nil {
			return err
		}
		fields["choice"] = choice

		if choice == answerSchema {
			return s.resyncSchema(ctx)
		}

		backup, err := s.prompt.AskChoice(ctx, "Have you made a backup of your data?", yesNo)
		if err != nil {
			return err
		}
		if backup != answerYes {
			fmt.Fprint(s.out, formatter.Important("Well you better go do it."))
			continue
		}

		conformed, err := tree.ConformData(s.schema, s.data)
		if err != nil {
			return err
		}
		s.data = conformed
		added, err := s.ensureOptions()
		if err != nil {
			return err
		}
		if added {
			if err := s.resyncSchema(ctx); err != nil {
				return err
			}
		}
		return s.dataRepo.Save(ctx, s.data)
	}
}

func (s *Session) resyncSchema(ctx context.Context) error {
	s.schema = tree.DeriveSchema(s.data)
	return s.schemaRepo.Save(ctx, s.schema)
}

// Commit persists the outcome of a cycle: the schema is rewritten when it
// no longer mirrors the data's categories and their order, then the data
// is saved.
func (s *Session) Commit(ctx context.Context) (err error) {
	fields := map[string]any{}
	defer s.observe(ctx, "commit", time.Now(), fields, &err)

	if derived := tree.DeriveSchema(s.data); !tree.Equal(derived, s.schema) {
		fields["schema_changed"] = true
		s.schema = derived
		if err := s.schemaRepo.Save(ctx, s.schema); err != nil {
			return err
		}
	}
	if err := s.dataRepo.Save(ctx, s.data); err != nil {
		return err
	}
	fmt.Fprint(s.out, formatter.Important("success"))
	return nil
}

// report prints a recoverable error before the current state is re-entered.
func (s *Session) report(err error) {
	fmt.Fprint(s.out, formatter.Important(err.Error()))
}

func (s *Session) label(p domain.Path) string {
	return p.Label(s.cfg.RootLabel)
}

func (s *Session) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	s.observer.ObserveUseCase(ctx, service.UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
