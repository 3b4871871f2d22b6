package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/anchor"
	"github.com/tandemhq/tandem/internal/core/review"
	"github.com/tandemhq/tandem/internal/core/styles"
)

const (
	// gutterWidth is the connector column between the panes.
	gutterWidth = 9
	// commentLaneHeight is the fixed height of the comment lane under the
	// panes. Fixed so the pane viewport stays stable across cursor moves.
	commentLaneHeight = 6
)

func keyMatches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

// paneHeight is the number of visible rows in each diff pane.
func (m *Model) paneHeight() int {
	h := m.height - 2 - commentLaneHeight
	if h < 1 {
		h = 1
	}
	return h
}

// sidebarWidth is the file list column width.
func (m *Model) sidebarWidth() int {
	w := m.width * 22 / 100
	if w < 16 {
		w = 16
	}
	return w
}

// paneWidth is the width of one diff pane.
func (m *Model) paneWidth() int {
	w := (m.width - m.sidebarWidth() - 1 - gutterWidth) / 2
	if w < 10 {
		w = 10
	}
	return w
}

// View renders the whole screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.modal != nil {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.modal.View())
	}

	header := m.renderHeader()
	main := m.renderMain()
	lane := m.renderCommentLane()
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, main, lane, status)
}

// renderHeader renders the top line: diff identity, current file, and
// loading progress.
func (m Model) renderHeader() string {
	left := styles.TextPrimaryStyle.Bold(true).Render("tandem") + " " +
		styles.TextMutedStyle.Render(m.diffID.String())

	var right string
	switch {
	case m.err != nil:
		right = styles.TextErrorStyle.Render(m.err.Error())
	case m.loading:
		right = styles.TextMutedStyle.Render("loading...")
	case !m.loader.Done():
		right = styles.TextMutedStyle.Render(
			fmt.Sprintf("aligning %d/%d", m.loader.Count(), m.loader.Total()))
	case m.fileIdx < len(m.files):
		right = styles.TextForegroundStyle.Render(m.files[m.fileIdx].Path)
	}

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

// renderMain renders the sidebar, both panes, and the connector gutter.
func (m Model) renderMain() string {
	height := m.paneHeight()

	sidebar := fileList{
		files:    m.files,
		reviewed: m.reviewed,
		selected: m.fileIdx,
		width:    m.sidebarWidth(),
		height:   height,
	}

	sep := styles.PaneBorderStyle.
		Width(1).
		Height(height).
		Render(strings.TrimRight(strings.Repeat("│\n", height), "\n"))

	if m.diff == nil {
		empty := lipgloss.Place(m.width-m.sidebarWidth()-1, height,
			lipgloss.Center, lipgloss.Center,
			styles.TextMutedStyle.Render("select a file"))
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.sidebarWidth()).Height(height).Render(sidebar.render()),
			sep, empty)
	}

	if m.diff.IsBinary() {
		msg := lipgloss.Place(m.width-m.sidebarWidth()-1, height,
			lipgloss.Center, lipgloss.Center,
			styles.TextMutedStyle.Render("binary file"))
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.sidebarWidth()).Height(height).Render(sidebar.render()),
			sep, msg)
	}

	active := m.loader.Active()
	before := paneView{
		side:       align.Before,
		lines:      m.diff.SideLines(align.Before),
		alignments: active,
		offset:     m.ctl.TopRow(align.Before),
		width:      m.paneWidth(),
		height:     height,
		active:     m.activeSide == align.Before,
		cursor:     m.cursor,
		selecting:  m.selecting,
		selStart:   m.selStart,
	}
	after := paneView{
		side:       align.After,
		lines:      m.diff.SideLines(align.After),
		alignments: active,
		offset:     m.ctl.TopRow(align.After),
		width:      m.paneWidth(),
		height:     height,
		active:     m.activeSide == align.After,
		cursor:     m.cursor,
		selecting:  m.selecting,
		selStart:   m.selStart,
	}

	gutter := renderGutter(m.frame, gutterWidth, height)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.sidebarWidth()).Height(height).Render(sidebar.render()),
		sep,
		lipgloss.NewStyle().Width(m.paneWidth()).Height(height).Render(before.render()),
		lipgloss.NewStyle().Width(gutterWidth).Height(height).Render(gutter),
		lipgloss.NewStyle().Width(m.paneWidth()).Height(height).Render(after.render()),
	)
}

// renderCommentLane shows the comments anchored at the cursor row plus
// any file-level comments, markdown-rendered.
func (m Model) renderCommentLane() string {
	width := m.width - 2
	if m.cfg.CommentLineWidth > 0 && width > m.cfg.CommentLineWidth {
		width = m.cfg.CommentLineWidth
	}

	var bodies []string
	for _, a := range anchor.At(m.anchored, m.cursor) {
		label := fmt.Sprintf("[%d-%d] ", a.Comment.Span.Start+1, a.Comment.Span.End)
		bodies = append(bodies, styles.CommentBarStyle.Render(label)+renderMarkdown(a.Comment.Content, width))
	}
	for _, c := range m.fileLevelComments() {
		bodies = append(bodies, styles.CommentBarStyle.Render("[file] ")+renderMarkdown(c.Content, width))
	}

	var content string
	if len(bodies) == 0 {
		content = styles.TextMutedStyle.Render("no comments here · c to add one")
	} else {
		content = strings.Join(bodies, "\n")
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(commentLaneHeight).
		MaxHeight(commentLaneHeight).
		Padding(0, 1).
		Render(content)
}

// fileLevelComments returns the file-level comments for the current file.
func (m Model) fileLevelComments() []review.Comment {
	path := ""
	if m.fileIdx < len(m.files) {
		path = m.files[m.fileIdx].Path
	}

	var out []review.Comment
	for _, c := range m.comments {
		if c.Path == path && c.FileLevel() {
			out = append(out, c)
		}
	}
	return out
}

// renderMarkdown renders a comment body through glamour, collapsed to a
// single lane-friendly block. Falls back to plain wrapping on error.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wordwrap.String(content, width)
	}

	out, err := r.Render(content)
	if err != nil {
		return wordwrap.String(content, width)
	}
	return strings.TrimSpace(out)
}

// renderStatusBar renders the bottom help line.
func (m Model) renderStatusBar() string {
	pane := "after"
	if m.activeSide == align.Before {
		pane = "before"
	}
	mode := ""
	if m.selecting {
		mode = " · VISUAL"
	}

	left := styles.TextPrimaryStyle.Render(pane) +
		styles.TextMutedStyle.Render(fmt.Sprintf(" %d/%d%s", m.cursor+1, m.sideLineCount(m.activeSide), mode))
	right := styles.TextMutedStyle.Render(
		"j/k scroll · tab pane · v select · c comment · e edit · x delete · m reviewed · n/p file · q quit")

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 0 {
		pad = 0
	}

	return styles.StatusBarStyle.Width(m.width).Render(
		" " + left + strings.Repeat(" ", pad) + right)
}
