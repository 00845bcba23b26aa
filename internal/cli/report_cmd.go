package cli

import (
	"fmt"

	"github.com/alexanderramin/actlog/internal/cli/formatter"
	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/tree"
	"github.com/spf13/cobra"
)

func newPrintCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the data tree with per-category totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.Data.Load(cmd.Context())
			if err != nil {
				return err
			}
			out, err := formatter.FormatCategoryTree(data, app.Config.RootLabel)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the schema and data files have the same categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			schema, err := app.Schema.Load(ctx)
			if err != nil {
				return err
			}
			data, err := app.Data.Load(ctx)
			if err != nil {
				return err
			}

			onlyInData := tree.Missing(data, schema)
			onlyInSchema := tree.Missing(schema, data)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCheck(app.Config.RootLabel, onlyInData, onlyInSchema))

			if len(onlyInData) > 0 || len(onlyInSchema) > 0 {
				return fmt.Errorf("%d paths differ: %w", len(onlyInData)+len(onlyInSchema), domain.ErrStructuralMismatch)
			}
			return nil
		},
	}
}

func newTotalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "total [PATH]",
		Short: "Show the minutes recorded under a category",
		Long: `Show the minutes recorded under a category and its share of everything
recorded. PATH is dotted, e.g. options.run; a leading root label is accepted.
Without PATH the whole tree is totalled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.Data.Load(cmd.Context())
			if err != nil {
				return err
			}

			var path domain.Path
			if len(args) == 1 {
				path = domain.ParsePath(args[0]).TrimRoot(app.Config.RootLabel)
			}
			node, err := tree.Resolve(data, path)
			if err != nil {
				return err
			}
			total, err := tree.CollapseBranchValue(node)
			if err != nil {
				return err
			}
			overall, err := tree.CollapseBranchValue(data)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTotal(path.Label(app.Config.RootLabel), total, overall))
			return nil
		},
	}
}
