package align

// DefaultBatchSize is the number of alignments revealed per loader batch.
const DefaultBatchSize = 20

// Loader incrementally reveals the alignments of a FileDiff in fixed-size
// batches so very large diffs don't block first paint. The active count
// grows monotonically from 0 to len(diff.Alignments); the caller schedules
// Advance during idle time.
//
// Each Set starts a new load identified by a generation number. Advance
// calls carrying a stale generation are no-ops, so batches scheduled for a
// previous file can never corrupt the current one.
type Loader struct {
	diff       *FileDiff
	batch      int
	active     int
	generation uint64
}

// NewLoader creates a loader revealing batch alignments per Advance.
// A non-positive batch falls back to DefaultBatchSize.
func NewLoader(batch int) *Loader {
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	return &Loader{batch: batch}
}

// Set replaces the diff being loaded and cancels any in-flight load.
// An empty alignment list completes immediately. Returns the generation
// identifying the new load; pass it to Advance.
func (l *Loader) Set(diff *FileDiff) uint64 {
	l.generation++
	l.diff = diff
	l.active = 0
	return l.generation
}

// Generation returns the identity of the current load.
func (l *Loader) Generation() uint64 {
	return l.generation
}

// Advance reveals the next batch for the load identified by gen. It returns
// true when the active count changed. Stale generations and completed loads
// are silently dropped.
func (l *Loader) Advance(gen uint64) bool {
	if gen != l.generation || l.diff == nil {
		return false
	}
	total := len(l.diff.Alignments)
	if l.active >= total {
		return false
	}
	l.active = min(l.active+l.batch, total)
	return true
}

// Active returns the currently revealed prefix of the alignment list.
func (l *Loader) Active() []Alignment {
	if l.diff == nil {
		return nil
	}
	return l.diff.Alignments[:l.active]
}

// Count returns the number of active alignments.
func (l *Loader) Count() int {
	return l.active
}

// Total returns the full alignment count of the current diff.
func (l *Loader) Total() int {
	if l.diff == nil {
		return 0
	}
	return len(l.diff.Alignments)
}

// Done reports whether the current load has revealed every alignment.
func (l *Loader) Done() bool {
	return l.diff == nil || l.active == len(l.diff.Alignments)
}
