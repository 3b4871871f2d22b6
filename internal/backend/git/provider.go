// Package git retrieves file diffs from a git repository and converts them
// into the alignment model consumed by the view engine. The engine itself
// never computes alignments; this package is the backend collaborator that
// does, by translating git's hunks into a complete partition of both files.
package git

import (
	"context"

	"github.com/tandemhq/tandem/internal/core/align"
)

// FileStatus describes one changed file in a diff.
type FileStatus struct {
	// Path is the file's path on the after side (or before side for
	// deletions).
	Path string
	// OldPath is set for renames.
	OldPath string
	Kind    align.ChangeKind
}

// Provider supplies diff data for a repository. A FileDiff is retrieved
// once per file selection; there are no streaming updates mid-session.
type Provider interface {
	// ChangedFiles lists the files changed between the two refs.
	ChangedFiles(ctx context.Context, id align.DiffID) ([]FileStatus, error)

	// FileDiff returns the full diff for one file: both sides' content
	// plus validated alignments.
	FileDiff(ctx context.Context, id align.DiffID, status FileStatus) (*align.FileDiff, error)
}
