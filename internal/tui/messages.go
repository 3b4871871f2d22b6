package tui

import (
	"github.com/tandemhq/tandem/internal/backend/git"
	"github.com/tandemhq/tandem/internal/core/align"
	"github.com/tandemhq/tandem/internal/core/review"
)

// filesLoadedMsg carries the change list for the active diff.
type filesLoadedMsg struct {
	files []git.FileStatus
	err   error
}

// fileDiffMsg carries one file's diff after a selection.
type fileDiffMsg struct {
	path string
	diff *align.FileDiff
	err  error
}

// commentsLoadedMsg carries the comments for the active diff.
type commentsLoadedMsg struct {
	comments []review.Comment
	err      error
}

// reviewedLoadedMsg carries the reviewed-file marks for the active diff.
type reviewedLoadedMsg struct {
	paths []string
	err   error
}

// loaderTickMsg advances one progressive loading batch. The generation
// identifies which load it belongs to; stale ticks are dropped.
type loaderTickMsg struct {
	generation uint64
}

// commentMutatedMsg is sent after a comment save or delete; it triggers
// a reload of the comment list.
type commentMutatedMsg struct {
	err error
}
