// Package review defines the domain types and persistence interface for
// review data: comments anchored to line spans and per-file reviewed marks,
// keyed by the diff identity they belong to.
package review

import (
	"time"

	"github.com/tandemhq/tandem/internal/core/align"
)

// Comment is an annotation attached to a line span of a file within a
// diff. The span is fixed in after-side row coordinates at creation time
// and acts as a stable identifier: it is never rewritten when alignments
// change, only its screen position is recomputed. A zero span means the
// comment applies to the whole file rather than a line range.
type Comment struct {
	ID        string
	Diff      align.DiffID
	Path      string
	Span      align.Span
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FileLevel reports whether the comment applies to the whole file.
func (c Comment) FileLevel() bool {
	return c.Span == align.Span{}
}
