package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/actlog/internal/domain"
)

// FormatHistory renders recorded minutes newest first. Undone records are
// kept and marked.
func FormatHistory(entries []*domain.HistoryEntry, rootLabel string, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No records yet.") + "\n"
	}
	cols := []Column{
		{Title: "ID"},
		{Title: "WHEN"},
		{Title: "CATEGORY"},
		{Title: "MINUTES", Right: true},
		{Title: "STATUS"},
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		status := StyleGreen.Render("recorded")
		minutes := strconv.Itoa(e.Delta)
		if e.UndoneAt != nil {
			status = StyleRed.Render("undone " + HumanTimestamp(*e.UndoneAt, now))
			minutes = Dim(minutes)
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			HumanTimestamp(e.Timestamp, now),
			e.Path.Label(rootLabel),
			minutes,
			status,
		})
	}
	return RenderTable(cols, rows)
}

// FormatChanges renders structural changes newest first.
func FormatChanges(changes []*domain.ChangeEvent, rootLabel string, now time.Time) string {
	if len(changes) == 0 {
		return Dim("No category changes yet.") + "\n"
	}
	cols := []Column{{Title: "WHEN"}, {Title: "CHANGE"}, {Title: "CATEGORY"}}
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		var what string
		switch c.Kind {
		case domain.ChangeAddLeaf:
			what = StyleGreen.Render("added " + c.Name)
		case domain.ChangeExpandLeaf:
			what = StylePurple.Render("split off " + c.Name)
		default:
			what = string(c.Kind) + " " + c.Name
		}
		rows = append(rows, []string{HumanTimestamp(c.At, now), what, c.Path.Label(rootLabel)})
	}
	return RenderTable(cols, rows)
}

// FormatTotal renders the collapsed minutes under one category and its
// share of the whole tree.
func FormatTotal(label string, total, overall int) string {
	return fmt.Sprintf("%s  %s  %s\n",
		Bold(label),
		MinutesColor(total).Render(FormatMinutes(total)),
		RenderShare(total, overall, 20))
}

// FormatCheck reports paths present on one side only. Empty lists mean the
// files agree.
func FormatCheck(rootLabel string, onlyInData, onlyInSchema []domain.Path) string {
	if len(onlyInData) == 0 && len(onlyInSchema) == 0 {
		return StyleGreen.Render("✔ schema and data agree") + "\n"
	}
	var b strings.Builder
	b.WriteString(StyleRed.Render("✖ schema and data differ"))
	b.WriteString("\n")
	section := func(title string, paths []domain.Path) {
		if len(paths) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(Header(title))
		b.WriteString("\n")
		for _, p := range paths {
			b.WriteString("  " + p.Label(rootLabel) + "\n")
		}
	}
	section("Only in data", onlyInData)
	section("Only in schema", onlyInSchema)
	return b.String()
}
