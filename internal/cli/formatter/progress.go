package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// progressBands picks the bar color: the first band whose floor pct reaches wins.
var progressBands = []struct {
	floor int
	style lipgloss.Style
}{
	{66, StyleGreen},
	{33, StyleYellow},
	{0, StyleRed},
}

// RenderProgress draws a whole percentage as "[████░░░░]  45%". The
// percentage is clamped to 0..100 and the bar is at least two cells wide.
func RenderProgress(pct int, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleRed
	for _, b := range progressBands {
		if pct >= b.floor {
			style = b.style
			break
		}
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}
