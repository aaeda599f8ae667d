package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable_Alignment(t *testing.T) {
	cols := []Column{{Title: "NAME"}, {Title: "N", Right: true}, {Title: "NOTE"}}
	rows := [][]string{
		{"alpha", "7", "x"},
		{"b", "12"},
	}

	lines := strings.Split(strings.TrimRight(stripANSI(RenderTable(cols, rows)), "\n"), "\n")
	assert.Equal(t, []string{
		"NAME    N  NOTE",
		"─────  ──  ────",
		"alpha   7  x",
		"b      12  ",
	}, lines)
}

func TestRenderTable_StyledCellsMeasuredByVisibleWidth(t *testing.T) {
	cols := []Column{{Title: "A"}, {Title: "B"}}
	rows := [][]string{{StyleGreen.Render("ok"), "z"}}

	lines := strings.Split(stripANSI(RenderTable(cols, rows)), "\n")
	assert.Equal(t, "ok  z", lines[2])
}

func TestRenderTable_NoColumns(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
