package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/actlog/internal/domain"
	"github.com/alexanderramin/actlog/internal/tree"
)

// FormatOptions lists a branch's children with their 1-based selection
// numbers, as shown at every navigation step.
func FormatOptions(label string, branch *tree.Node) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(label))
	b.WriteString("\n")

	index := tree.IndexChildren(branch)
	for i := 1; i <= len(index); i++ {
		name := index[i]
		child, _ := branch.Child(name)
		num := StyleBlue.Render(fmt.Sprintf("%d:", i))
		if child.IsBranch() {
			b.WriteString(fmt.Sprintf("  %s %s %s\n", num, Bold(name), Dim("›")))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", num, name, Dim(FormatMinutes(child.Value()))))
	}
	return b.String()
}

// FormatRecord renders a record with its path under the root label.
func FormatRecord(rec *domain.Record, rootLabel string) string {
	if rec == nil {
		return "none"
	}
	return fmt.Sprintf("%s: %d at %s",
		rec.Path.Label(rootLabel), rec.Delta, rec.Timestamp.Format("2006-01-02 15:04"))
}

var commandHelp = []struct {
	word, text string
}{
	{"HELP", "Print this help message."},
	{"PRINT", "Print your data."},
	{"UNDO", "Undo your last recording."},
}

// FormatHelp renders the in-session command words, marking the shortcut
// letter of each command that has one in aliases.
func FormatHelp(aliases map[string]string) string {
	shortcut := map[string]string{}
	for alias, word := range aliases {
		if cur, ok := shortcut[word]; !ok || alias < cur {
			shortcut[word] = alias
		}
	}

	var b strings.Builder
	b.WriteString(Dim("Edit your schema file to manually change your options."))
	b.WriteString("\n\n")
	for _, c := range commandHelp {
		name := c.word
		if s, ok := shortcut[c.word]; ok {
			name = fmt.Sprintf("%s (%s)", c.word, s)
		}
		b.WriteString(fmt.Sprintf("  %-10s %s\n", StyleGreen.Render(name), c.text))
	}

	var extra []string
	for alias, word := range aliases {
		if word != "HELP" && word != "PRINT" && word != "UNDO" {
			extra = append(extra, fmt.Sprintf("%s=%s", alias, word))
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		b.WriteString("\n")
		b.WriteString(Dim("Answer shortcuts: " + strings.Join(extra, ", ")))
		b.WriteString("\n")
	}
	return RenderBox("Help", b.String())
}
