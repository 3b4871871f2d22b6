package align

import "fmt"

// Validate checks the partition invariant for an alignment list: the before
// spans must be contiguous, non-overlapping, and cover exactly
// [0, beforeLen), and likewise the after spans must cover [0, afterLen).
// Unchanged alignments must have equal-length spans on both sides.
//
// Validation belongs at ingestion time. Downstream consumers assume the
// invariant holds and degrade gracefully rather than re-checking it.
func Validate(alignments []Alignment, beforeLen, afterLen int) error {
	beforePos := 0
	afterPos := 0

	for i, a := range alignments {
		if a.Before.End < a.Before.Start || a.After.End < a.After.Start {
			return fmt.Errorf("alignment %d: inverted span", i)
		}
		if a.Before.Start != beforePos {
			return fmt.Errorf("alignment %d: before span starts at %d, want %d", i, a.Before.Start, beforePos)
		}
		if a.After.Start != afterPos {
			return fmt.Errorf("alignment %d: after span starts at %d, want %d", i, a.After.Start, afterPos)
		}
		if !a.Changed && a.Before.Len() != a.After.Len() {
			return fmt.Errorf("alignment %d: unchanged region has unequal lengths %d/%d", i, a.Before.Len(), a.After.Len())
		}
		beforePos = a.Before.End
		afterPos = a.After.End
	}

	if beforePos != beforeLen {
		return fmt.Errorf("before spans cover [0,%d), want [0,%d)", beforePos, beforeLen)
	}
	if afterPos != afterLen {
		return fmt.Errorf("after spans cover [0,%d), want [0,%d)", afterPos, afterLen)
	}

	return nil
}
