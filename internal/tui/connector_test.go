package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemhq/tandem/internal/core/geometry"
	"github.com/tandemhq/tandem/internal/tui/testutil"
)

func TestRenderGutter_EmptyFrame(t *testing.T) {
	out := renderGutter(geometry.Frame{}, 5, 3)

	rows := strings.Split(out, "\n")
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, strings.Repeat(" ", 5), row)
	}
}

func TestRenderGutter_ZeroSize(t *testing.T) {
	assert.Equal(t, "", renderGutter(geometry.Frame{}, 0, 3))
	assert.Equal(t, "", renderGutter(geometry.Frame{}, 5, 0))
}

func TestRenderGutter_PlotsConnectorCurves(t *testing.T) {
	frame := geometry.Frame{
		Connectors: []geometry.Connector{{
			Top:    geometry.Curve{X0: 0, Y0: 1, C1X: 4, C1Y: 1, C2X: 4, C2Y: 1, X1: 8, Y1: 1},
			Bottom: geometry.Curve{X0: 0, Y0: 3, C1X: 4, C1Y: 3, C2X: 4, C2Y: 3, X1: 8, Y1: 3},
		}},
	}

	out := testutil.StripANSI(renderGutter(frame, 9, 6))
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 6)

	// Horizontal curves plot dashes across rows 1 and 3; other rows stay
	// blank.
	assert.Contains(t, rows[1], "─")
	assert.Contains(t, rows[3], "─")
	assert.Equal(t, strings.TrimRight(rows[0], " "), "")
	assert.Equal(t, strings.TrimRight(rows[5], " "), "")
}

func TestRenderGutter_ClipsOffscreenCurves(t *testing.T) {
	frame := geometry.Frame{
		Connectors: []geometry.Connector{{
			Top:    geometry.Curve{X0: 0, Y0: -10, C1X: 4, C1Y: -10, C2X: 4, C2Y: -10, X1: 8, Y1: -10},
			Bottom: geometry.Curve{X0: 0, Y0: 50, C1X: 4, C1Y: 50, C2X: 4, C2Y: 50, X1: 8, Y1: 50},
		}},
	}

	out := testutil.StripANSI(renderGutter(frame, 9, 4))
	assert.NotContains(t, out, "─")
}

func TestRenderGutter_CommentBars(t *testing.T) {
	frame := geometry.Frame{
		Bars: []geometry.HighlightBar{
			{CommentID: "a", TopPx: 0, BottomPx: 3, Rank: 0},
			{CommentID: "b", TopPx: 1, BottomPx: 2, Rank: 1},
		},
	}

	out := testutil.StripANSI(renderGutter(frame, 6, 4))
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 4)

	// Rank 0 occupies the rightmost column, rank 1 one column inward.
	assert.Equal(t, "▐", string([]rune(rows[0])[5]))
	assert.Equal(t, " ", string([]rune(rows[0])[4]))
	assert.Equal(t, "▐", string([]rune(rows[1])[5]))
	assert.Equal(t, "▐", string([]rune(rows[1])[4]))
	assert.Equal(t, " ", string([]rune(rows[3])[5]))
}

func TestCubic_Endpoints(t *testing.T) {
	assert.InDelta(t, 2.0, cubic(2, 5, 7, 9, 0), 1e-9)
	assert.InDelta(t, 9.0, cubic(2, 5, 7, 9, 1), 1e-9)
}
