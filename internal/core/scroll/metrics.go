// Package scroll implements the alignment-driven scroll synchronization
// engine for the two diff panes. Given a scroll event on one pane it
// computes the corresponding offset for the other pane from the alignment
// mapping, with anti-feedback arbitration so programmatic echoes never
// fight user input.
package scroll

// DefaultLineHeight is used when no measurement is available, e.g. before
// first paint.
const DefaultLineHeight = 20.0

// Metrics measures rendered content. The engine depends on this capability
// interface rather than a rendering surface so the algorithm is testable
// headlessly; line height is measured dynamically because font size is
// user-adjustable.
type Metrics interface {
	// MeasureLineHeight returns the rendered line height in pixels, or a
	// non-positive value when no measurement is available yet.
	MeasureLineHeight() float64
}

// FixedMetrics is a Metrics that always reports a constant line height.
// Frontends that work in row units use a height of 1; tests
// use it to pin the geometry.
type FixedMetrics float64

// MeasureLineHeight implements Metrics.
func (m FixedMetrics) MeasureLineHeight() float64 {
	return float64(m)
}
