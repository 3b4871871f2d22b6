package tui

import (
	"strings"

	"github.com/tandemhq/tandem/internal/core/geometry"
	"github.com/tandemhq/tandem/internal/core/styles"
)

// Cell paint classes, later wins on overlap.
const (
	cellEmpty = iota
	cellCurve
	cellHovered
	cellBar
)

// gutterCell is one terminal cell of the connector column.
type gutterCell struct {
	r     rune
	class int
	rank  int
}

// renderGutter rasterizes a geometry frame into the connector column
// between the panes. Curves are sampled along their parameter and plotted
// into cells; comment bars occupy the right edge, shifted left by rank so
// nested comments stay individually visible.
func renderGutter(frame geometry.Frame, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}

	grid := make([][]gutterCell, height)
	for y := range grid {
		grid[y] = make([]gutterCell, width)
	}

	for _, c := range frame.Connectors {
		class := cellCurve
		if c.Hovered {
			class = cellHovered
		}
		plotCurve(grid, c.Top, class)
		plotCurve(grid, c.Bottom, class)
	}

	for _, b := range frame.Bars {
		col := width - 1 - b.Rank
		if col < 0 {
			col = 0
		}
		top := int(b.TopPx)
		bottom := int(b.BottomPx)
		if bottom <= top {
			bottom = top + 1
		}
		for y := top; y < bottom; y++ {
			if y < 0 || y >= height {
				continue
			}
			grid[y][col] = gutterCell{r: '▐', class: cellBar, rank: b.Rank}
		}
	}

	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			switch cell.class {
			case cellCurve:
				sb.WriteString(styles.ConnectorStyle.Render(string(cell.r)))
			case cellHovered:
				sb.WriteString(styles.ConnectorHoveredStyle.Render(string(cell.r)))
			case cellBar:
				sb.WriteString(styles.CommentBarStyle.Render(string(cell.r)))
			default:
				sb.WriteByte(' ')
			}
		}
	}

	return sb.String()
}

// plotCurve samples a cubic bezier and marks the cells it passes through.
// Curve coordinates are already viewport-relative; cells outside the grid
// are clipped.
func plotCurve(grid [][]gutterCell, curve geometry.Curve, class int) {
	if len(grid) == 0 {
		return
	}
	width := len(grid[0])
	steps := width * 4
	if steps < 8 {
		steps = 8
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := cubic(curve.X0, curve.C1X, curve.C2X, curve.X1, t)
		y := cubic(curve.Y0, curve.C1Y, curve.C2Y, curve.Y1, t)

		col := int(x)
		row := int(y)
		if row < 0 || row >= len(grid) || col < 0 || col >= width {
			continue
		}
		if grid[row][col].class < class {
			grid[row][col] = gutterCell{r: curveGlyph(curve, t), class: class}
		}
	}
}

// curveGlyph picks a glyph from the curve's vertical direction at t.
func curveGlyph(curve geometry.Curve, t float64) rune {
	dy := curve.Y1 - curve.Y0
	switch {
	case dy > 0.5 && t > 0.25 && t < 0.75:
		return '╲'
	case dy < -0.5 && t > 0.25 && t < 0.75:
		return '╱'
	default:
		return '─'
	}
}

// cubic evaluates one coordinate of a cubic bezier at parameter t.
func cubic(p0, p1, p2, p3, t float64) float64 {
	u := 1 - t
	return u*u*u*p0 + 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t*p3
}
