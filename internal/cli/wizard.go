package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/alexanderramin/actlog/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// actlogHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func actlogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// formPrompter asks each question with a one-field huh form. Aborting a
// form (Ctrl+C or Esc) ends input like EOF does on a pipe.
type formPrompter struct {
	aliases map[string]string
	run     func(ctx context.Context, f *huh.Form) error
}

func newFormPrompter(aliases map[string]string) *formPrompter {
	return &formPrompter{
		aliases: aliases,
		run: func(ctx context.Context, f *huh.Form) error {
			return f.RunWithContext(ctx)
		},
	}
}

func (p *formPrompter) AskFreeText(ctx context.Context, question string) (string, error) {
	var answer string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(question).
				Placeholder("help, print or undo also work here").
				Value(&answer),
		),
	).WithTheme(actlogHuhTheme()).WithShowHelp(false)

	if err := p.run(ctx, form); err != nil {
		return "", formError(err)
	}
	return answer, nil
}

func (p *formPrompter) AskChoice(ctx context.Context, question string, allowed []string) (string, error) {
	var answer string
	options := make([]huh.Option[string], 0, len(allowed))
	for _, a := range allowed {
		label := a
		if key := p.shortcut(a); key != "" {
			label = a + " (" + key + ")"
		}
		options = append(options, huh.NewOption(label, strings.ToUpper(a)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(question).
				Options(options...).
				Value(&answer),
		),
	).WithTheme(actlogHuhTheme()).WithShowHelp(false)

	if err := p.run(ctx, form); err != nil {
		return "", formError(err)
	}
	return answer, nil
}

// shortcut returns the alias mapped to word, if any.
func (p *formPrompter) shortcut(word string) string {
	best := ""
	for alias, target := range p.aliases {
		if strings.EqualFold(target, word) && (best == "" || alias < best) {
			best = alias
		}
	}
	return best
}

// formError maps an aborted form to io.EOF so the session ends cleanly.
func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return io.EOF
	}
	return err
}
