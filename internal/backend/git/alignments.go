package git

import "github.com/tandemhq/tandem/internal/core/align"

// hunk is a changed region from git diff, converted to 0-indexed line
// numbers. Git reports 1-indexed starts, except that a zero-length side
// names the line the change sits after.
type hunk struct {
	oldStart int
	oldLines int
	newStart int
	newLines int
}

// alignmentsFromHunks builds the complete alignment partition from -U0
// hunks. The hunks define the changed regions; the gaps between them are
// unchanged regions with equal length on both sides.
func alignmentsFromHunks(hunks []hunk, beforeLen, afterLen int) []align.Alignment {
	if beforeLen == 0 && afterLen == 0 {
		return nil
	}

	// No hunks but files exist: fully added, fully deleted, or identical.
	if len(hunks) == 0 {
		switch {
		case beforeLen == 0:
			return []align.Alignment{{
				Before:  align.NewSpan(0, 0),
				After:   align.NewSpan(0, afterLen),
				Changed: true,
			}}
		case afterLen == 0:
			return []align.Alignment{{
				Before:  align.NewSpan(0, beforeLen),
				After:   align.NewSpan(0, 0),
				Changed: true,
			}}
		default:
			return []align.Alignment{{
				Before:  align.NewSpan(0, beforeLen),
				After:   align.NewSpan(0, afterLen),
				Changed: false,
			}}
		}
	}

	var alignments []align.Alignment
	beforePos := 0
	afterPos := 0

	for _, h := range hunks {
		if beforePos < h.oldStart || afterPos < h.newStart {
			alignments = append(alignments, align.Alignment{
				Before:  align.NewSpan(beforePos, h.oldStart),
				After:   align.NewSpan(afterPos, h.newStart),
				Changed: false,
			})
		}

		beforeEnd := h.oldStart + h.oldLines
		afterEnd := h.newStart + h.newLines
		alignments = append(alignments, align.Alignment{
			Before:  align.NewSpan(h.oldStart, beforeEnd),
			After:   align.NewSpan(h.newStart, afterEnd),
			Changed: true,
		})

		beforePos = beforeEnd
		afterPos = afterEnd
	}

	if beforePos < beforeLen || afterPos < afterLen {
		alignments = append(alignments, align.Alignment{
			Before:  align.NewSpan(beforePos, beforeLen),
			After:   align.NewSpan(afterPos, afterLen),
			Changed: false,
		})
	}

	return alignments
}
