package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/review"
	"github.com/tandemhq/tandem/internal/core/styles"
)

// CommentModal handles comment entry for a selected span of lines, and
// editing of an existing comment when opened with NewEditCommentModal.
type CommentModal struct {
	input     textinput.Model
	span      align.Span
	label     string
	title     string
	editID    string
	width     int
	submitted bool
	cancelled bool
}

// NewCommentModal creates a comment modal for the given after-side span.
// A zero span produces a file-level comment.
func NewCommentModal(span align.Span, width int) CommentModal {
	ti := textinput.New()
	ti.Placeholder = "Enter your comment..."
	ti.Focus()
	ti.Width = width - 10

	label := "File comment"
	if !span.IsEmpty() || span.Start > 0 {
		if span.Len() <= 1 {
			label = fmt.Sprintf("Line %d", span.Start+1)
		} else {
			label = fmt.Sprintf("Lines %d-%d", span.Start+1, span.End)
		}
	}

	return CommentModal{
		input: ti,
		span:  span,
		label: label,
		title: "Add Comment",
		width: width,
	}
}

// NewEditCommentModal creates a modal pre-filled with an existing comment's
// content. Submitting updates that comment instead of creating a new one.
func NewEditCommentModal(c review.Comment, width int) CommentModal {
	m := NewCommentModal(c.Span, width)
	m.title = "Edit Comment"
	m.editID = c.ID
	m.input.SetValue(c.Content)
	m.input.CursorEnd()
	return m
}

// Update handles messages.
func (m CommentModal) Update(msg tea.Msg) (CommentModal, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if m.input.Value() != "" {
				m.submitted = true
				return m, nil
			}
		case "esc":
			m.cancelled = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the modal content.
func (m CommentModal) View() string {
	content := strings.Join([]string{
		styles.TextPrimaryStyle.Bold(true).Render(m.title),
		styles.CommentTextStyle.Render(m.label),
		m.input.View(),
		styles.TextMutedStyle.Render("enter: save • esc: cancel"),
	}, "\n")

	return styles.ModalStyle.Width(m.width - 4).Render(content)
}

// Submitted reports whether the comment was submitted.
func (m CommentModal) Submitted() bool { return m.submitted }

// Cancelled reports whether the modal was dismissed.
func (m CommentModal) Cancelled() bool { return m.cancelled }

// Value returns the entered comment text.
func (m CommentModal) Value() string { return m.input.Value() }

// Span returns the after-side span the comment targets.
func (m CommentModal) Span() align.Span { return m.span }

// EditingID returns the id of the comment being edited, or "" when the
// modal creates a new comment.
func (m CommentModal) EditingID() string { return m.editID }
