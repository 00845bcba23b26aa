package cli

import (
	"github.com/alexanderramin/actlog/internal/session"
	"github.com/spf13/cobra"
)

func runSession(cmd *cobra.Command, app *App) error {
	out := cmd.OutOrStdout()

	var prompter session.Prompter = newLinePrompter(app.In, out, app.Config.Aliases)
	if app.Config.Forms && app.IsInteractive != nil && app.IsInteractive() {
		prompter = newFormPrompter(app.Config.Aliases)
	}

	s := session.New(session.Deps{
		Config:   app.Config,
		Prompter: prompter,
		Out:      out,
		Clock:    app.Clock,
		Schema:   app.Schema,
		Data:     app.Data,
		History:  app.History,
		Observer: app.Observer,
	})
	return s.Run(cmd.Context())
}
