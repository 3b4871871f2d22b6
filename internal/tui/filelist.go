package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tandemhq/tandem/internal/backend/git"
	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/styles"
)

// fileList renders the changed-file sidebar.
type fileList struct {
	files    []git.FileStatus
	reviewed map[string]bool
	selected int
	width    int
	height   int
}

// kindMark returns the single-letter change marker for a file.
func kindMark(kind align.ChangeKind) string {
	switch kind {
	case align.Added:
		return styles.LineAddedStyle.Render("A")
	case align.Deleted:
		return styles.LineRemovedStyle.Render("D")
	default:
		return styles.TextForegroundStyle.Render("M")
	}
}

func (l fileList) render() string {
	if len(l.files) == 0 {
		return styles.TextMutedStyle.Render("no changes")
	}

	// Keep the selection visible.
	top := 0
	if l.selected >= l.height {
		top = l.selected - l.height + 1
	}

	var rows []string
	for i := top; i < len(l.files) && len(rows) < l.height; i++ {
		f := l.files[i]

		check := " "
		if l.reviewed[f.Path] {
			check = styles.LineAddedStyle.Render("✓")
		}

		name := runewidth.Truncate(f.Path, l.width-5, "…")
		row := check + " " + kindMark(f.Kind) + " " + name
		if i == l.selected {
			row = styles.SelectionStyle.Render(check+" ") + kindMark(f.Kind) + " " + styles.TextPrimaryStyle.Render(name)
		}
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}
