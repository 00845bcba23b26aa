package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders a category's share of a total like [████░░░░]  45%.
// Shares above two thirds are green, above one third yellow, the rest blue.
func RenderShare(part, total int, width int) string {
	if width < 2 {
		width = 2
	}
	var pct float64
	if total > 0 && part > 0 {
		pct = float64(part) / float64(total)
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	empty := width - filled
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	style := StyleBlue
	if pct >= 0.66 {
		style = StyleGreen
	} else if pct >= 0.33 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
