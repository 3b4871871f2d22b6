// Package geometry derives the 2D drawing commands that visualize the
// alignment mapping between the two panes: connector ribbons for changed
// regions and highlight bars for anchored comments.
//
// Build is a pure function of its input tuple. It carries no state and
// emits backend-neutral commands, so it can back an immediate-mode vector
// surface, a persistent canvas, or the terminal column renderer equally;
// identical inputs always produce identical output.
package geometry

import (
	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/anchor"
)

// Curve is a cubic bezier edge of a connector ribbon, running from the
// before column (x=0) to the after column (x=Width).
type Curve struct {
	X0, Y0 float64
	C1X    float64
	C1Y    float64
	C2X    float64
	C2Y    float64
	X1, Y1 float64
}

// Connector is the filled region linking a changed alignment across the
// gutter: a quadrilateral with two independently stroked curved edges.
// Pure insertions or deletions degenerate to a triangle (one side's top
// and bottom coincide).
type Connector struct {
	// Index of the alignment within the active list, for hover hit tests
	// and toolbar placement.
	Index int
	// Corner Y coordinates in viewport space (pane-local pixels).
	BeforeTopPx    float64
	BeforeBottomPx float64
	AfterTopPx     float64
	AfterBottomPx  float64
	// Stroked boundary edges.
	Top    Curve
	Bottom Curve
	// Hovered recolors the fill; it is purely presentational.
	Hovered bool
}

// HighlightBar marks a comment span alongside the after pane. Rank is the
// pyramid nesting rank driving the lateral offset.
type HighlightBar struct {
	CommentID string
	TopPx     float64
	BottomPx  float64
	Rank      int
}

// Frame is the full set of draw commands for one redraw.
type Frame struct {
	Connectors []Connector
	Bars       []HighlightBar
}

// Input is everything Build depends on.
type Input struct {
	Alignments     []align.Alignment
	BeforeOffsetPx float64
	AfterOffsetPx  float64
	LineHeight     float64
	ViewportPx     float64
	// Width is the horizontal distance between the panes (the gutter).
	Width float64
	// HoveredIndex is the hovered alignment index, or -1.
	HoveredIndex int
	// Comments are the file's anchored comments; geometry is computed
	// against the after pane's offset.
	Comments []anchor.Anchored
}

// Build computes the draw commands for the current view state. Regions
// entirely outside the vertical viewport are skipped.
func Build(in Input) Frame {
	var frame Frame
	lh := in.LineHeight

	for i, a := range in.Alignments {
		if !a.Changed {
			continue
		}

		bTop := float64(a.Before.Start)*lh - in.BeforeOffsetPx
		bBottom := float64(a.Before.End)*lh - in.BeforeOffsetPx
		aTop := float64(a.After.Start)*lh - in.AfterOffsetPx
		aBottom := float64(a.After.End)*lh - in.AfterOffsetPx

		if !visible(bTop, bBottom, in.ViewportPx) && !visible(aTop, aBottom, in.ViewportPx) {
			continue
		}

		frame.Connectors = append(frame.Connectors, Connector{
			Index:          i,
			BeforeTopPx:    bTop,
			BeforeBottomPx: bBottom,
			AfterTopPx:     aTop,
			AfterBottomPx:  aBottom,
			Top:            edge(bTop, aTop, in.Width),
			Bottom:         edge(bBottom, aBottom, in.Width),
			Hovered:        i == in.HoveredIndex,
		})
	}

	for _, p := range anchor.Place(in.Comments, in.AfterOffsetPx, lh) {
		if !visible(p.TopPx, p.BottomPx, in.ViewportPx) {
			continue
		}
		frame.Bars = append(frame.Bars, HighlightBar{
			CommentID: p.Comment.ID,
			TopPx:     p.TopPx,
			BottomPx:  p.BottomPx,
			Rank:      p.Rank,
		})
	}

	return frame
}

// edge builds a ribbon edge with horizontal tangents at both ends.
func edge(y0, y1, width float64) Curve {
	mid := width / 2
	return Curve{
		X0: 0, Y0: y0,
		C1X: mid, C1Y: y0,
		C2X: mid, C2Y: y1,
		X1: width, Y1: y1,
	}
}

// visible reports whether a [top, bottom] pixel range intersects the
// viewport [0, viewportPx).
func visible(top, bottom, viewportPx float64) bool {
	return bottom >= 0 && top < viewportPx
}
