// Package anchor positions review comments against the rendered panes.
// Stored spans are stable identifiers and never transformed; only the
// screen position is recomputed from (span, scroll offset, line height) on
// every redraw, exactly like alignment geometry.
package anchor

import (
	"sort"

	"github.com/tandemhq/tandem/internal/core/review"
)

// Anchored is a comment with its stacking rank resolved. Rank is the count
// of strictly-larger overlapping spans placed before it: overlapping
// comments nest inward from a fixed edge in a pyramid, so narrower spans
// get a larger lateral offset and remain individually clickable.
type Anchored struct {
	Comment review.Comment
	Rank    int
}

// Placed is an anchored comment with pixel geometry for the current
// scroll position.
type Placed struct {
	Anchored
	TopPx    float64
	BottomPx float64
}

// Filter returns the comments belonging to a file, preserving store order.
// It is re-applied whenever the active file changes.
func Filter(comments []review.Comment, path string) []review.Comment {
	var out []review.Comment
	for _, c := range comments {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Stack resolves pyramid ranks for a file's comments. File-level comments
// (zero span) carry no spatial position and are excluded. The result is
// ordered by descending span length and is deterministic regardless of the
// input order: ties break on span start, then comment ID.
func Stack(comments []review.Comment) []Anchored {
	spatial := make([]review.Comment, 0, len(comments))
	for _, c := range comments {
		if c.FileLevel() {
			continue
		}
		spatial = append(spatial, c)
	}

	sort.SliceStable(spatial, func(i, j int) bool {
		a, b := spatial[i], spatial[j]
		if a.Span.Len() != b.Span.Len() {
			return a.Span.Len() > b.Span.Len()
		}
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		return a.ID < b.ID
	})

	placed := make([]Anchored, 0, len(spatial))
	for _, c := range spatial {
		rank := 0
		for _, p := range placed {
			if p.Comment.Span.Overlaps(c.Span) && p.Comment.Span.Len() > c.Span.Len() {
				rank++
			}
		}
		placed = append(placed, Anchored{Comment: c, Rank: rank})
	}
	return placed
}

// Place computes pixel geometry for anchored comments at the given scroll
// offset and line height.
func Place(anchored []Anchored, scrollOffsetPx, lineHeight float64) []Placed {
	out := make([]Placed, 0, len(anchored))
	for _, a := range anchored {
		out = append(out, Placed{
			Anchored: a,
			TopPx:    float64(a.Comment.Span.Start)*lineHeight - scrollOffsetPx,
			BottomPx: float64(a.Comment.Span.End)*lineHeight - scrollOffsetPx,
		})
	}
	return out
}

// RowSpans returns, for quick lookup during pane rendering, which rows of
// a file carry at least one comment.
func RowSpans(anchored []Anchored) map[int]bool {
	rows := make(map[int]bool)
	for _, a := range anchored {
		for r := a.Comment.Span.Start; r < a.Comment.Span.End; r++ {
			rows[r] = true
		}
	}
	return rows
}

// At returns the anchored comments covering the given row, innermost
// (highest rank) first. Used to resolve which comment a row-targeted
// action applies to.
func At(anchored []Anchored, row int) []Anchored {
	var out []Anchored
	for _, a := range anchored {
		if a.Comment.Span.Contains(row) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return out
}
