package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/actlog/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title   string
	Level   int
	IsLast  bool
	Branch  bool
	Minutes int
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeGap    = "   "
)

// CategoryItems flattens a tree depth-first into display items. Branch
// items carry the collapsed total of everything beneath them.
func CategoryItems(root *tree.Node) ([]TreeItem, error) {
	var items []TreeItem
	var visit func(n *tree.Node, level int) error
	visit = func(n *tree.Node, level int) error {
		names := tree.ChildNames(n)
		for i, name := range names {
			child, _ := n.Child(name)
			item := TreeItem{
				Title:  name,
				Level:  level,
				IsLast: i == len(names)-1,
				Branch: child.IsBranch(),
			}
			if child.IsBranch() {
				total, err := tree.CollapseBranchValue(child)
				if err != nil {
					return fmt.Errorf("totalling %s: %w", name, err)
				}
				item.Minutes = total
				items = append(items, item)
				if err := visit(child, level+1); err != nil {
					return err
				}
				continue
			}
			item.Minutes = child.Value()
			items = append(items, item)
		}
		return nil
	}
	if err := visit(root, 1); err != nil {
		return nil, err
	}
	return items, nil
}

// RenderTree renders items as an indented tree under label using
// box-drawing connectors. Minute badges are right-aligned; branch badges
// show the branch total.
func RenderTree(label string, total int, items []TreeItem) string {
	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, 0, len(items)+1)
	lines = append(lines, lineInfo{
		content: StyleHeader.Render(label),
		badge:   badge(total, true),
	})

	// open[level] is true while an ancestor at that level has later siblings.
	open := map[int]bool{}
	for _, item := range items {
		var prefix strings.Builder
		for l := 1; l < item.Level; l++ {
			if open[l] {
				prefix.WriteString(treePipe)
			} else {
				prefix.WriteString(treeGap)
			}
		}
		if item.IsLast {
			prefix.WriteString(treeCorner)
		} else {
			prefix.WriteString(treeBranch)
		}
		open[item.Level] = !item.IsLast

		title := item.Title
		if item.Branch {
			title = Bold(title)
		}
		lines = append(lines, lineInfo{
			content: prefix.String() + title,
			badge:   badge(item.Minutes, item.Branch),
		})
	}

	maxContentWidth := 0
	for _, li := range lines {
		if w := lipgloss.Width(li.content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		pad := maxContentWidth - lipgloss.Width(li.content)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}

func badge(min int, total bool) string {
	text := FormatMinutes(min)
	if total {
		text = "Σ " + text
	}
	return MinutesColor(min).Render(fmt.Sprintf("[ %s ]", text))
}

// FormatCategoryTree renders a whole data tree with per-branch totals.
func FormatCategoryTree(root *tree.Node, label string) (string, error) {
	items, err := CategoryItems(root)
	if err != nil {
		return "", err
	}
	total, err := tree.CollapseBranchValue(root)
	if err != nil {
		return "", err
	}
	return RenderTree(label, total, items), nil
}
