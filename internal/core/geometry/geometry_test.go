package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/anchor"
	"github.com/tandemhq/tandem/internal/core/review"
)

func testInput() Input {
	return Input{
		Alignments: []align.Alignment{
			{Before: align.NewSpan(0, 5), After: align.NewSpan(0, 5), Changed: false},
			{Before: align.NewSpan(5, 8), After: align.NewSpan(5, 6), Changed: true},
			{Before: align.NewSpan(8, 20), After: align.NewSpan(6, 18), Changed: false},
		},
		LineHeight:   10,
		ViewportPx:   100,
		Width:        40,
		HoveredIndex: -1,
	}
}

func TestBuild_EmitsOnlyChangedRegions(t *testing.T) {
	frame := Build(testInput())

	require.Len(t, frame.Connectors, 1)
	c := frame.Connectors[0]
	assert.Equal(t, 1, c.Index)
	assert.Equal(t, 50.0, c.BeforeTopPx)
	assert.Equal(t, 80.0, c.BeforeBottomPx)
	assert.Equal(t, 50.0, c.AfterTopPx)
	assert.Equal(t, 60.0, c.AfterBottomPx)
	assert.False(t, c.Hovered)
}

func TestBuild_AppliesScrollOffsets(t *testing.T) {
	in := testInput()
	in.BeforeOffsetPx = 20
	in.AfterOffsetPx = 10

	frame := Build(in)
	require.Len(t, frame.Connectors, 1)
	c := frame.Connectors[0]
	assert.Equal(t, 30.0, c.BeforeTopPx)
	assert.Equal(t, 40.0, c.AfterTopPx)
}

func TestBuild_SkipsOffscreenRegions(t *testing.T) {
	in := testInput()
	in.ViewportPx = 40 // changed block starts at 50px on both sides

	frame := Build(in)
	assert.Empty(t, frame.Connectors)

	// Visible on one side is enough to emit.
	in.AfterOffsetPx = 30
	frame = Build(in)
	assert.Len(t, frame.Connectors, 1)
}

func TestBuild_DegenerateInsertion(t *testing.T) {
	in := testInput()
	in.Alignments = []align.Alignment{
		{Before: align.NewSpan(0, 3), After: align.NewSpan(0, 3), Changed: false},
		// Pure insertion: before side collapses to a point.
		{Before: align.NewSpan(3, 3), After: align.NewSpan(3, 7), Changed: true},
		{Before: align.NewSpan(3, 6), After: align.NewSpan(7, 10), Changed: false},
	}

	frame := Build(in)
	require.Len(t, frame.Connectors, 1)
	c := frame.Connectors[0]
	assert.Equal(t, c.BeforeTopPx, c.BeforeBottomPx)
	assert.Equal(t, 30.0, c.AfterTopPx)
	assert.Equal(t, 70.0, c.AfterBottomPx)
}

func TestBuild_CurveEndpoints(t *testing.T) {
	frame := Build(testInput())
	require.Len(t, frame.Connectors, 1)
	top := frame.Connectors[0].Top

	assert.Equal(t, 0.0, top.X0)
	assert.Equal(t, 50.0, top.Y0)
	assert.Equal(t, 40.0, top.X1)
	assert.Equal(t, 50.0, top.Y1)
	// Horizontal tangents: control points sit at mid-gutter.
	assert.Equal(t, 20.0, top.C1X)
	assert.Equal(t, 20.0, top.C2X)
}

func TestBuild_HoverIsPresentationalOnly(t *testing.T) {
	in := testInput()
	plain := Build(in)

	in.HoveredIndex = 1
	hovered := Build(in)

	require.Len(t, hovered.Connectors, 1)
	assert.True(t, hovered.Connectors[0].Hovered)

	// Identical geometry besides the hover flag.
	h := hovered.Connectors[0]
	h.Hovered = false
	assert.Equal(t, plain.Connectors[0], h)
}

func TestBuild_CommentBars(t *testing.T) {
	in := testInput()
	in.Comments = anchor.Stack([]review.Comment{
		{ID: "wide", Path: "f", Span: align.NewSpan(5, 9)},
		{ID: "narrow", Path: "f", Span: align.NewSpan(5, 6)},
	})

	frame := Build(in)
	require.Len(t, frame.Bars, 2)
	assert.Equal(t, "wide", frame.Bars[0].CommentID)
	assert.Equal(t, 0, frame.Bars[0].Rank)
	assert.Equal(t, 50.0, frame.Bars[0].TopPx)
	assert.Equal(t, "narrow", frame.Bars[1].CommentID)
	assert.Equal(t, 1, frame.Bars[1].Rank)
}

func TestBuild_Deterministic(t *testing.T) {
	in := testInput()
	assert.Equal(t, Build(in), Build(in))
}
