package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/tui/testutil"
)

func TestPaneView_Golden(t *testing.T) {
	p := paneView{
		side:   align.After,
		lines:  []string{"alpha", "bravo"},
		offset: 0,
		width:  20,
		height: 4,
	}

	testutil.RequireGolden(t, testutil.StripANSI(p.render()))
}

func TestPaneView_ScrollOffset(t *testing.T) {
	p := paneView{
		side:   align.After,
		lines:  []string{"a", "b", "c", "d", "e"},
		offset: 2,
		width:  20,
		height: 2,
	}

	out := testutil.StripANSI(p.render())
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "3 c")
	assert.Contains(t, rows[1], "4 d")
}

func TestPaneView_CursorMarker(t *testing.T) {
	p := paneView{
		side:   align.After,
		lines:  []string{"a", "b"},
		width:  20,
		height: 2,
		active: true,
		cursor: 1,
	}

	rows := strings.Split(testutil.StripANSI(p.render()), "\n")
	assert.NotContains(t, rows[0], "▶")
	assert.Contains(t, rows[1], "▶")
}

func TestPaneView_RowsPastContent(t *testing.T) {
	p := paneView{
		side:   align.After,
		lines:  []string{"only"},
		width:  20,
		height: 3,
	}

	rows := strings.Split(testutil.StripANSI(p.render()), "\n")
	require.Len(t, rows, 3)
	assert.Equal(t, "~", rows[1])
	assert.Equal(t, "~", rows[2])
}

func TestPaneView_TruncatesLongLines(t *testing.T) {
	p := paneView{
		side:   align.After,
		lines:  []string{strings.Repeat("x", 100)},
		width:  20,
		height: 1,
	}

	out := testutil.StripANSI(p.render())
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("x", 20))
}

func TestChangeClasses(t *testing.T) {
	alignments := []align.Alignment{
		{Before: align.NewSpan(0, 2), After: align.NewSpan(0, 2)},
		{Before: align.NewSpan(2, 3), After: align.NewSpan(2, 4), Changed: true},
		{Before: align.NewSpan(3, 5), After: align.NewSpan(4, 6)},
	}

	t.Run("after side marks added", func(t *testing.T) {
		classes := changeClasses(alignments, align.After, 6)
		assert.Equal(t, lineContext, classes[1])
		assert.Equal(t, lineAdded, classes[2])
		assert.Equal(t, lineAdded, classes[3])
		assert.Equal(t, lineContext, classes[4])
	})

	t.Run("before side marks removed", func(t *testing.T) {
		classes := changeClasses(alignments, align.Before, 5)
		assert.Equal(t, lineRemoved, classes[2])
		assert.Equal(t, lineContext, classes[3])
	})

	t.Run("uncovered rows stay context", func(t *testing.T) {
		classes := changeClasses(alignments[:1], align.After, 6)
		assert.Equal(t, lineContext, classes[5])
	})
}

func TestPaneView_Selection(t *testing.T) {
	p := paneView{
		side:      align.After,
		lines:     []string{"a", "b", "c"},
		width:     20,
		height:    3,
		active:    true,
		cursor:    0,
		selecting: true,
		selStart:  2,
	}

	// Selection is normalized, rows 0..2 all inside.
	assert.True(t, p.isSelected(0))
	assert.True(t, p.isSelected(1))
	assert.True(t, p.isSelected(2))

	p.selecting = false
	assert.False(t, p.isSelected(1))
}
