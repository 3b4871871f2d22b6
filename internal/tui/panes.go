package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/styles"
)

// lineNumWidth is the width of the line-number gutter inside each pane.
const lineNumWidth = 5

// paneView describes one pane render: which side, its scroll offset in
// rows, and the cursor/selection when the pane is active.
type paneView struct {
	side       align.Side
	lines      []string
	alignments []align.Alignment
	offset     int
	width      int
	height     int

	active    bool
	cursor    int
	selecting bool
	selStart  int
}

// render produces the pane's visible window, one line per terminal row.
func (p paneView) render() string {
	classes := changeClasses(p.alignments, p.side, len(p.lines))

	var rows []string
	for y := 0; y < p.height; y++ {
		row := p.offset + y
		if row < 0 || row >= len(p.lines) {
			rows = append(rows, styles.LineMissingStyle.Render("~"))
			continue
		}
		rows = append(rows, p.renderRow(row, classes))
	}

	return strings.Join(rows, "\n")
}

func (p paneView) renderRow(row int, classes []lineClass) string {
	num := fmt.Sprintf("%*d ", lineNumWidth-1, row+1)
	gutter := styles.GutterStyle.Render(num)
	if p.active && row == p.cursor {
		gutter = styles.TextPrimaryStyle.Render("▶") + styles.GutterStyle.Render(num[1:])
	}

	text := runewidth.Truncate(p.lines[row], p.width-lineNumWidth, "…")

	var style = styles.LineContextStyle
	if row < len(classes) {
		switch classes[row] {
		case lineAdded:
			style = styles.LineAddedStyle
		case lineRemoved:
			style = styles.LineRemovedStyle
		}
	}

	if p.isSelected(row) {
		style = styles.SelectionStyle
	}

	return gutter + style.Render(text)
}

// isSelected reports whether row is inside the active visual selection.
func (p paneView) isSelected(row int) bool {
	if !p.active || !p.selecting {
		return false
	}
	start, end := p.selStart, p.cursor
	if start > end {
		start, end = end, start
	}
	return row >= start && row <= end
}

type lineClass int

const (
	lineContext lineClass = iota
	lineAdded
	lineRemoved
)

// changeClasses maps each row of one side to its change class using the
// currently active alignments. Rows not yet covered (loading still in
// progress) stay context-styled.
func changeClasses(alignments []align.Alignment, side align.Side, lineCount int) []lineClass {
	classes := make([]lineClass, lineCount)
	changed := lineAdded
	if side == align.Before {
		changed = lineRemoved
	}

	for _, a := range alignments {
		if !a.Changed {
			continue
		}
		span := a.Span(side)
		for row := span.Start; row < span.End && row < lineCount; row++ {
			classes[row] = changed
		}
	}

	return classes
}
