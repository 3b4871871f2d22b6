// Package align defines the immutable value types describing a file pair
// and the region correspondences ("alignments") between its two versions.
// Alignments exhaustively partition both files: every line belongs to
// exactly one alignment. They drive scroll synchronization and connector
// rendering.
package align

// Side identifies one of the two panes of a diff.
type Side int

const (
	// Before is the left pane (old version).
	Before Side = iota
	// After is the right pane (new version).
	After
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Before {
		return After
	}
	return Before
}

func (s Side) String() string {
	if s == Before {
		return "before"
	}
	return "after"
}

// Span is a contiguous range of lines: a half-open interval [Start, End)
// over 0-indexed line numbers. A zero-length span marks a pure insertion
// point on that side.
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span. Start must not exceed End.
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of lines covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no lines.
func (s Span) IsEmpty() bool {
	return s.Len() == 0
}

// Contains reports whether row falls inside the span.
func (s Span) Contains(row int) bool {
	return row >= s.Start && row < s.End
}

// Overlaps reports whether two spans share at least one line.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Alignment maps a region in the before file to a region in the after file.
// Unchanged alignments cover identical content and have equal-length spans;
// changed alignments may have unequal lengths, including zero on one side
// for pure insertions or deletions.
type Alignment struct {
	Before  Span
	After   Span
	Changed bool
}

// Span returns the alignment's span on the given side.
func (a Alignment) Span(side Side) Span {
	if side == Before {
		return a.Before
	}
	return a.After
}
