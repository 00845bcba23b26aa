package cli

import (
	"fmt"

	"github.com/alexanderramin/actlog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var changes bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent recordings from the history log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.historyEnabled() {
				fmt.Fprintln(out, formatter.Dim("History is disabled; set --db or history_path to enable it."))
				return nil
			}

			ctx := cmd.Context()
			now := app.Clock.Now()
			entries, err := app.History.ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Header("Recordings"))
			fmt.Fprint(out, formatter.FormatHistory(entries, app.Config.RootLabel, now))

			if !changes {
				return nil
			}
			events, err := app.History.ListChanges(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.Header("Category changes"))
			fmt.Fprint(out, formatter.FormatChanges(events, app.Config.RootLabel, now))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")
	cmd.Flags().BoolVar(&changes, "changes", false, "Also list added and split categories")

	return cmd
}
