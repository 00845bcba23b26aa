package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/actlog/internal/config"
	"github.com/alexanderramin/actlog/internal/db"
	"github.com/alexanderramin/actlog/internal/repository"
	"github.com/alexanderramin/actlog/internal/service"
	"github.com/alexanderramin/actlog/internal/session"
	"github.com/spf13/cobra"
)

// App holds the configuration and collaborators shared by all commands.
// Nil collaborators are wired from Config before a command runs.
type App struct {
	Config config.Config
	In     io.Reader
	Clock  session.Clock

	Schema   repository.TreeRepo
	Data     repository.TreeRepo
	History  service.HistoryService
	Observer service.UseCaseObserver

	// IsInteractive reports whether stdin is a terminal. Forms are only
	// used when it returns true.
	IsInteractive func() bool

	closers []io.Closer
}

// NewRootCmd creates the top-level "actlog" command. Without a subcommand
// it runs the interactive recording session.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "actlog",
		Short:         "Record the minutes you spend on a tree of activities",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.wire(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, app)
		},
	}

	config.BindFlags(root.PersistentFlags(), &app.Config)

	root.AddCommand(
		newPrintCmd(app),
		newCheckCmd(app),
		newTotalCmd(app),
		newHistoryCmd(app),
	)

	return root
}

// wire fills in every collaborator the caller did not provide.
func (app *App) wire(logOut io.Writer) error {
	if err := app.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if app.Observer == nil {
		app.Observer = service.NoopUseCaseObserver{}
		if app.Config.Log {
			app.Observer = service.NewLogUseCaseObserver(logOut)
		}
	}
	if app.Clock == nil {
		app.Clock = session.SystemClock{}
	}
	if app.Schema == nil {
		app.Schema = repository.NewJSONSchemaRepo(app.Config.SchemaPath)
	}
	if app.Data == nil {
		app.Data = repository.NewJSONDataRepo(app.Config.DataPath)
	}
	if app.History != nil {
		return nil
	}
	if app.Config.HistoryPath == "" {
		app.History = service.NoopHistory{}
		return nil
	}

	database, err := db.OpenDB(app.Config.HistoryPath)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	app.closers = append(app.closers, database)
	app.History = service.NewHistoryService(
		repository.NewSQLiteRecordRepo(database),
		repository.NewSQLiteChangeRepo(database),
		db.NewSQLiteUnitOfWork(database),
		app.Observer,
	)
	return nil
}

// Close releases resources opened by wire.
func (app *App) Close() error {
	var errs []error
	for _, c := range app.closers {
		errs = append(errs, c.Close())
	}
	app.closers = nil
	return errors.Join(errs...)
}

func (app *App) historyEnabled() bool {
	_, noop := app.History.(service.NoopHistory)
	return !noop
}
