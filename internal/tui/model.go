// Package tui is the terminal presentation layer: a file list sidebar,
// two synchronized diff panes with a connector gutter between them, a
// comment lane, and a comment entry modal. All engine state is mutated
// from the update loop; derived state (active alignments, anchored
// comments, connector geometry) is recomputed at most once per cycle.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tandemhq/tandem/internal/backend/git"
	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/anchor"
	"github.com/tandemhq/tandem/internal/core/config"
	"github.com/tandemhq/tandem/internal/core/geometry"
	"github.com/tandemhq/tandem/internal/core/logging"
	"github.com/tandemhq/tandem/internal/core/review"
	"github.com/tandemhq/tandem/internal/core/scroll"
)

// loaderTickInterval paces progressive alignment batches so input stays
// responsive between them.
const loaderTickInterval = 10 * time.Millisecond

// Model is the root bubbletea model.
type Model struct {
	cfg      *config.Config
	provider git.Provider
	store    review.Store
	diffID   align.DiffID
	keys     KeyMap
	log      zerolog.Logger

	width  int
	height int

	files    []git.FileStatus
	reviewed map[string]bool
	fileIdx  int

	diff     *align.FileDiff
	loader   *align.Loader
	ctl      *scroll.Controller
	comments []review.Comment

	// Active pane state. The cursor lives on whichever side has focus.
	activeSide align.Side
	cursor     int
	selecting  bool
	selStart   int

	modal   *CommentModal
	loading bool
	err     error

	// Derived state, recomputed once per update cycle when dirty.
	dirty    bool
	anchored []anchor.Anchored
	frame    geometry.Frame
}

// New creates the root model.
func New(cfg *config.Config, provider git.Provider, store review.Store, diffID align.DiffID) Model {
	scrollCfg := scroll.Config{
		AnchorFraction:   cfg.Scroll.AnchorFraction,
		ApplyThresholdPx: cfg.Scroll.ApplyThresholdPx,
		EchoWindowPx:     cfg.Scroll.EchoWindowPx,
		QuietPeriod:      cfg.Scroll.QuietPeriod(),
	}

	return Model{
		cfg:        cfg,
		provider:   provider,
		store:      store,
		diffID:     diffID,
		keys:       DefaultKeyMap(),
		log:        logging.Component("tui"),
		reviewed:   make(map[string]bool),
		loader:     align.NewLoader(cfg.Loader.BatchSize),
		ctl:        scroll.New(cellMetrics{}, scrollCfg),
		activeSide: align.After,
		loading:    true,
		dirty:      true,
	}
}

// Init kicks off the initial data loads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadFilesCmd(), m.loadCommentsCmd(), m.loadReviewedCmd())
}

// Update handles all messages. Derived state is refreshed once at the end
// of the cycle when anything marked it dirty.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyViewports()
		m.dirty = true

	case filesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			break
		}
		m.files = m.filterIgnored(msg.files)
		m.fileIdx = 0
		if len(m.files) > 0 {
			m.loading = true
			cmd = m.loadDiffCmd(m.files[0])
		}
		m.dirty = true

	case fileDiffMsg:
		cmd = m.applyFileDiff(msg)

	case loaderTickMsg:
		if m.loader.Advance(msg.generation) {
			m.ctl.SetAlignments(m.loader.Active())
			m.dirty = true
			if !m.loader.Done() {
				cmd = loaderTickCmd(msg.generation)
			}
		}

	case commentsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			break
		}
		m.comments = msg.comments
		m.dirty = true

	case reviewedLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			break
		}
		m.reviewed = make(map[string]bool, len(msg.paths))
		for _, p := range msg.paths {
			m.reviewed[p] = true
		}

	case commentMutatedMsg:
		if msg.err != nil {
			m.err = msg.err
			break
		}
		cmd = m.loadCommentsCmd()

	case tea.KeyMsg:
		if m.modal != nil {
			cmd = m.updateModal(msg)
		} else {
			var quit bool
			cmd, quit = m.handleKey(msg)
			if quit {
				return m, tea.Quit
			}
		}

	default:
		// Cursor blink and other component messages go to the modal.
		if m.modal != nil {
			cmd = m.updateModal(msg)
		}
	}

	if m.dirty {
		m.recompute()
		m.dirty = false
	}

	return m, cmd
}

// applyFileDiff installs a freshly loaded file diff and starts the
// progressive loader for its alignments.
func (m *Model) applyFileDiff(msg fileDiffMsg) tea.Cmd {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		return nil
	}
	if m.fileIdx >= len(m.files) || m.files[m.fileIdx].Path != msg.path {
		// Stale load for a file we've already navigated away from.
		return nil
	}

	m.diff = msg.diff
	m.cursor = 0
	m.selecting = false
	m.err = nil

	gen := m.loader.Set(msg.diff)
	m.ctl.SetAlignments(nil)
	m.applyViewports()
	m.ctl.ScrollToRow(0, m.activeSide)
	m.dirty = true

	if m.loader.Done() {
		m.ctl.SetAlignments(m.loader.Active())
		return nil
	}
	return loaderTickCmd(gen)
}

// handleKey processes input when no modal is open.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	keys := m.keys

	switch {
	case keyMatches(msg, keys.Quit):
		return nil, true

	case keyMatches(msg, keys.Down):
		m.moveCursor(1)

	case keyMatches(msg, keys.Up):
		m.moveCursor(-1)

	case keyMatches(msg, keys.HalfPgDown):
		m.moveCursor(m.paneHeight() / 2)

	case keyMatches(msg, keys.HalfPgUp):
		m.moveCursor(-m.paneHeight() / 2)

	case keyMatches(msg, keys.Top):
		m.cursor = 0
		m.ctl.ScrollToRow(0, m.activeSide)
		m.dirty = true

	case keyMatches(msg, keys.Bottom):
		last := m.sideLineCount(m.activeSide) - 1
		if last < 0 {
			last = 0
		}
		m.cursor = last
		m.ctl.ScrollToRow(last, m.activeSide)
		m.dirty = true

	case keyMatches(msg, keys.SwitchPane):
		m.switchPane()

	case keyMatches(msg, keys.Visual):
		if m.selecting {
			m.selecting = false
		} else {
			m.selecting = true
			m.selStart = m.cursor
		}
		m.dirty = true

	case keyMatches(msg, keys.Escape):
		m.selecting = false
		m.dirty = true

	case keyMatches(msg, keys.Comment):
		m.openCommentModal()

	case keyMatches(msg, keys.FileComment):
		modal := NewCommentModal(align.Span{}, m.width)
		m.modal = &modal

	case keyMatches(msg, keys.Edit):
		m.openEditModal()

	case keyMatches(msg, keys.Delete):
		return m.deleteCommentAtCursor(), false

	case keyMatches(msg, keys.ToggleDone):
		return m.toggleReviewed(), false

	case keyMatches(msg, keys.NextFile):
		return m.selectFile(m.fileIdx + 1), false

	case keyMatches(msg, keys.PrevFile):
		return m.selectFile(m.fileIdx - 1), false

	case keyMatches(msg, keys.NextChange):
		m.jumpToNextChange()
	}

	return nil, false
}

// updateModal routes input to the comment modal and handles its outcome.
func (m *Model) updateModal(msg tea.Msg) tea.Cmd {
	modal, cmd := m.modal.Update(msg)
	m.modal = &modal

	switch {
	case modal.Cancelled():
		m.modal = nil
	case modal.Submitted():
		span := modal.Span()
		content := modal.Value()
		editID := modal.EditingID()
		m.modal = nil
		m.selecting = false
		m.dirty = true
		if editID != "" {
			return m.updateCommentCmd(editID, content)
		}
		return m.saveCommentCmd(span, content)
	}

	return cmd
}

// moveCursor moves the cursor on the active side, scrolling the pane
// through the controller when the cursor leaves the visible window.
func (m *Model) moveCursor(delta int) {
	if m.diff == nil {
		return
	}

	max := m.sideLineCount(m.activeSide) - 1
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > max {
		m.cursor = max
	}

	// Keep the cursor inside the viewport.
	lh := m.ctl.LineHeight()
	top := m.ctl.TopRow(m.activeSide)
	height := m.paneHeight()
	offset := m.ctl.Offset(m.activeSide)

	if m.cursor < top {
		m.ctl.HandleScroll(m.activeSide, offset-float64(top-m.cursor)*lh)
	} else if m.cursor >= top+height {
		m.ctl.HandleScroll(m.activeSide, offset+float64(m.cursor-(top+height)+1)*lh)
	}

	m.dirty = true
}

// switchPane moves focus to the other side, carrying the cursor across
// via the row transfer so it stays on the corresponding line.
func (m *Model) switchPane() {
	if row, ok := m.ctl.TransferRow(m.activeSide, m.cursor); ok {
		m.cursor = row
	}
	m.activeSide = m.activeSide.Other()
	m.selecting = false

	max := m.sideLineCount(m.activeSide) - 1
	if m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.dirty = true
}

// openCommentModal opens the comment modal for the current selection, or
// the cursor line when no selection is active. Spans are stored in
// after-side coordinates; selections on the before pane are transferred.
func (m *Model) openCommentModal() {
	if m.diff == nil {
		return
	}

	start, end := m.cursor, m.cursor
	if m.selecting {
		start, end = m.selStart, m.cursor
		if start > end {
			start, end = end, start
		}
	}

	span := align.NewSpan(start, end+1)
	if m.activeSide == align.Before {
		s, okS := m.ctl.TransferRow(align.Before, span.Start)
		e, okE := m.ctl.TransferRow(align.Before, span.End)
		if !okS || !okE {
			return
		}
		if e <= s {
			e = s + 1
		}
		span = align.NewSpan(s, e)
	}

	modal := NewCommentModal(span, m.width)
	m.modal = &modal
}

// openEditModal reopens the comment modal pre-filled with the innermost
// comment anchored at the cursor row.
func (m *Model) openEditModal() {
	at := anchor.At(m.anchored, m.cursor)
	if len(at) == 0 {
		return
	}

	modal := NewEditCommentModal(at[0].Comment, m.width)
	m.modal = &modal
}

// deleteCommentAtCursor removes the innermost comment anchored at the
// cursor row.
func (m *Model) deleteCommentAtCursor() tea.Cmd {
	at := anchor.At(m.anchored, m.cursor)
	if len(at) == 0 {
		return nil
	}

	id := at[0].Comment.ID
	store := m.store
	return func() tea.Msg {
		return commentMutatedMsg{err: store.DeleteComment(context.Background(), id)}
	}
}

// toggleReviewed flips the reviewed mark on the current file.
func (m *Model) toggleReviewed() tea.Cmd {
	if m.fileIdx >= len(m.files) {
		return nil
	}

	path := m.files[m.fileIdx].Path
	marked := m.reviewed[path]
	m.reviewed[path] = !marked

	store, id := m.store, m.diffID
	return func() tea.Msg {
		var err error
		if marked {
			err = store.UnmarkReviewed(context.Background(), id, path)
		} else {
			err = store.MarkReviewed(context.Background(), id, path)
		}
		if err != nil {
			return commentMutatedMsg{err: err}
		}
		return nil
	}
}

// selectFile switches to another file in the change list.
func (m *Model) selectFile(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.files) || idx == m.fileIdx {
		return nil
	}

	m.fileIdx = idx
	m.loading = true
	m.dirty = true
	return m.loadDiffCmd(m.files[idx])
}

// jumpToNextChange scrolls to the next changed region after the cursor.
func (m *Model) jumpToNextChange() {
	for _, a := range m.loader.Active() {
		span := a.Span(m.activeSide)
		if a.Changed && span.Start > m.cursor {
			m.cursor = span.Start
			m.ctl.ScrollToRow(span.Start, m.activeSide)
			m.dirty = true
			return
		}
	}
}

// recompute refreshes derived state: anchored comments for the current
// file and the connector frame for the visible window.
func (m *Model) recompute() {
	path := ""
	if m.fileIdx < len(m.files) {
		path = m.files[m.fileIdx].Path
	}

	m.anchored = anchor.Stack(anchor.Filter(m.comments, path))

	m.frame = geometry.Build(geometry.Input{
		Alignments:     m.loader.Active(),
		BeforeOffsetPx: m.ctl.Offset(align.Before),
		AfterOffsetPx:  m.ctl.Offset(align.After),
		LineHeight:     m.ctl.LineHeight(),
		ViewportPx:     float64(m.paneHeight()),
		Width:          float64(gutterWidth),
		HoveredIndex:   m.hoveredIndex(),
		Comments:       m.anchored,
	})
}

// hoveredIndex returns the changed alignment under the cursor, -1 when
// the cursor sits in an unchanged region.
func (m *Model) hoveredIndex() int {
	for i, a := range m.loader.Active() {
		if a.Changed && a.Span(m.activeSide).Contains(m.cursor) {
			return i
		}
	}
	return -1
}

// applyViewports pushes the current pane dimensions into the controller.
func (m *Model) applyViewports() {
	lh := m.ctl.LineHeight()
	viewport := float64(m.paneHeight()) * lh
	m.ctl.SetViewport(align.Before, viewport, float64(m.sideLineCount(align.Before))*lh)
	m.ctl.SetViewport(align.After, viewport, float64(m.sideLineCount(align.After))*lh)
}

func (m *Model) sideLineCount(side align.Side) int {
	if m.diff == nil {
		return 0
	}
	return m.diff.LineCount(side)
}

// filterIgnored drops files matching the configured ignore globs.
func (m *Model) filterIgnored(files []git.FileStatus) []git.FileStatus {
	var kept []git.FileStatus
	for _, f := range files {
		if m.cfg.Ignored(f.Path) {
			m.log.Debug().Str("path", f.Path).Msg("ignoring file")
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// Commands

func (m Model) loadFilesCmd() tea.Cmd {
	provider, id := m.provider, m.diffID
	return func() tea.Msg {
		files, err := provider.ChangedFiles(context.Background(), id)
		return filesLoadedMsg{files: files, err: err}
	}
}

func (m Model) loadDiffCmd(status git.FileStatus) tea.Cmd {
	provider, id := m.provider, m.diffID
	return func() tea.Msg {
		diff, err := provider.FileDiff(context.Background(), id, status)
		return fileDiffMsg{path: status.Path, diff: diff, err: err}
	}
}

func (m Model) loadCommentsCmd() tea.Cmd {
	store, id := m.store, m.diffID
	return func() tea.Msg {
		comments, err := store.ListComments(context.Background(), id)
		return commentsLoadedMsg{comments: comments, err: err}
	}
}

func (m Model) loadReviewedCmd() tea.Cmd {
	store, id := m.store, m.diffID
	return func() tea.Msg {
		paths, err := store.ListReviewed(context.Background(), id)
		return reviewedLoadedMsg{paths: paths, err: err}
	}
}

func (m Model) saveCommentCmd(span align.Span, content string) tea.Cmd {
	if m.fileIdx >= len(m.files) {
		return nil
	}

	now := time.Now()
	comment := review.Comment{
		ID:        uuid.NewString(),
		Diff:      m.diffID,
		Path:      m.files[m.fileIdx].Path,
		Span:      span,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	store := m.store
	return func() tea.Msg {
		return commentMutatedMsg{err: store.SaveComment(context.Background(), comment)}
	}
}

func (m Model) updateCommentCmd(id, content string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return commentMutatedMsg{err: store.UpdateComment(context.Background(), id, content)}
	}
}

func loaderTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(loaderTickInterval, func(time.Time) tea.Msg {
		return loaderTickMsg{generation: gen}
	})
}
