package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/review"
	"github.com/tandemhq/tandem/internal/tui/testutil"
)

func typeText(m CommentModal, text string) CommentModal {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestCommentModal_Submit(t *testing.T) {
	m := NewCommentModal(align.NewSpan(4, 7), 80)
	m = typeText(m, "needs a nil check")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, m.Submitted())
	assert.False(t, m.Cancelled())
	assert.Equal(t, "needs a nil check", m.Value())
	assert.Equal(t, align.NewSpan(4, 7), m.Span())
}

func TestCommentModal_EmptySubmitIgnored(t *testing.T) {
	m := NewCommentModal(align.NewSpan(0, 1), 80)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Submitted())
}

func TestCommentModal_Cancel(t *testing.T) {
	m := NewCommentModal(align.NewSpan(0, 1), 80)
	m = typeText(m, "draft")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	assert.True(t, m.Cancelled())
	assert.False(t, m.Submitted())
}

func TestCommentModal_EditPrefilled(t *testing.T) {
	c := review.Comment{
		ID:      "c1",
		Span:    align.NewSpan(4, 7),
		Content: "needs a nil check",
	}
	m := NewEditCommentModal(c, 80)

	assert.Equal(t, "c1", m.EditingID())
	assert.Equal(t, "needs a nil check", m.Value())
	assert.Contains(t, testutil.StripANSI(m.View()), "Edit Comment")

	m = typeText(m, " here")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, m.Submitted())
	assert.Equal(t, "needs a nil check here", m.Value())
}

func TestCommentModal_Labels(t *testing.T) {
	tests := []struct {
		name string
		span align.Span
		want string
	}{
		{"file level", align.Span{}, "File comment"},
		{"single line", align.NewSpan(4, 5), "Line 5"},
		{"range", align.NewSpan(4, 7), "Lines 5-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewCommentModal(tt.span, 80)
			assert.Contains(t, testutil.StripANSI(m.View()), tt.want)
		})
	}
}
