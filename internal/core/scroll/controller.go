package scroll

import (
	"math"
	"time"

	"github.com/tandemhq/tandem/internal/core/align"
)

// Config tunes the synchronization behavior. The defaults are the values
// the algorithm was calibrated with; see DefaultConfig.
type Config struct {
	// AnchorFraction is the vertical proportion of the viewport used as
	// the synchronization reference point. 1/3 keeps following context
	// visible above the synced row.
	AnchorFraction float64
	// ApplyThresholdPx suppresses corrective writes smaller than this,
	// avoiding oscillation from rounding noise.
	ApplyThresholdPx float64
	// EchoWindowPx is the tolerance for recognizing a scroll event as the
	// programmatic echo of an offset the controller just set.
	EchoWindowPx float64
	// QuietPeriod is how long the primary side holds scroll authority
	// after its last genuine event.
	QuietPeriod time.Duration
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		AnchorFraction:   1.0 / 3.0,
		ApplyThresholdPx: 2,
		EchoWindowPx:     3,
		QuietPeriod:      150 * time.Millisecond,
	}
}

// State is the scroll state of one pane. It is mutated only by the
// Controller.
type State struct {
	OffsetPx   float64
	XOffsetPx  float64
	ContentPx  float64
	ViewportPx float64
}

// maxOffset returns the largest valid vertical offset for the pane.
func (s State) maxOffset() float64 {
	return math.Max(0, s.ContentPx-s.ViewportPx)
}

// Controller maintains the two panes' scroll offsets and keeps them
// correlated through the alignment mapping. All methods must be called
// from a single goroutine; the only internal coordination is the
// primary-side arbiter.
type Controller struct {
	metrics    Metrics
	cfg        Config
	alignments []align.Alignment

	panes [2]State
	// lastSet records the exact pixel value the controller last wrote to
	// each pane, used to recognize the programmatic echo. NaN means no
	// pending echo.
	lastSet  [2]float64
	lastSetX [2]float64
	arb      arbiter
	now      func() time.Time
}

// New creates a controller. metrics may be nil; the controller then falls
// back to DefaultLineHeight.
func New(metrics Metrics, cfg Config) *Controller {
	c := &Controller{
		metrics: metrics,
		cfg:     cfg,
		arb:     arbiter{quiet: cfg.QuietPeriod},
		now:     time.Now,
	}
	c.clearEchoes()
	return c
}

// SetAlignments replaces the active alignment set, either because a new
// file was selected or because the progressive loader revealed another
// batch. Cached echo trackers and the primary lock are meaningless against
// the new mapping, so both are cleared.
func (c *Controller) SetAlignments(alignments []align.Alignment) {
	c.alignments = alignments
	c.clearEchoes()
	c.arb.release()
}

// SetViewport updates the measured dimensions of a pane.
func (c *Controller) SetViewport(side align.Side, viewportPx, contentPx float64) {
	c.panes[side].ViewportPx = viewportPx
	c.panes[side].ContentPx = contentPx
	c.panes[side].OffsetPx = clamp(c.panes[side].OffsetPx, 0, c.panes[side].maxOffset())
}

// Offset returns the current vertical offset of a pane in pixels.
func (c *Controller) Offset(side align.Side) float64 {
	return c.panes[side].OffsetPx
}

// XOffset returns the current horizontal offset of a pane in pixels.
func (c *Controller) XOffset(side align.Side) float64 {
	return c.panes[side].XOffsetPx
}

// LineHeight returns the measured line height, falling back to
// DefaultLineHeight when no measurement is available.
func (c *Controller) LineHeight() float64 {
	if c.metrics == nil {
		return DefaultLineHeight
	}
	if h := c.metrics.MeasureLineHeight(); h > 0 {
		return h
	}
	return DefaultLineHeight
}

// TopRow returns the first visible row of a pane.
func (c *Controller) TopRow(side align.Side) int {
	return int(c.panes[side].OffsetPx / c.LineHeight())
}

// HandleScroll processes a vertical scroll event observed on side. Echoes
// of offsets the controller itself wrote are consumed without further
// effect; genuine events update the pane and, when the side holds (or can
// claim) scroll authority, drive the counterpart pane so the logical row
// under the anchor stays aligned.
func (c *Controller) HandleScroll(side align.Side, offsetPx float64) {
	offsetPx = clamp(offsetPx, 0, c.panes[side].maxOffset())

	if c.isEcho(&c.lastSet[side], offsetPx, c.cfg.EchoWindowPx) {
		c.panes[side].OffsetPx = offsetPx
		return
	}

	c.panes[side].OffsetPx = offsetPx

	if !c.arb.claim(side, c.now()) {
		return
	}
	if len(c.alignments) == 0 {
		return
	}

	c.syncFrom(side)
}

// HandleHorizontalScroll synchronizes horizontal offsets 1:1; no row
// mapping is involved.
func (c *Controller) HandleHorizontalScroll(side align.Side, xPx float64) {
	if xPx < 0 {
		xPx = 0
	}
	if c.isEcho(&c.lastSetX[side], xPx, c.cfg.EchoWindowPx) {
		c.panes[side].XOffsetPx = xPx
		return
	}
	c.panes[side].XOffsetPx = xPx

	target := side.Other()
	if math.Abs(c.panes[target].XOffsetPx-xPx) <= c.cfg.ApplyThresholdPx {
		return
	}
	c.panes[target].XOffsetPx = xPx
	c.lastSetX[target] = xPx
}

// ScrollToRow jumps the given row (in side coordinates) into view on both
// panes, placing it at the anchor fraction of each viewport. Both writes
// are recorded as programmatic echoes. Used for external navigation such
// as jumping to a commented line.
func (c *Controller) ScrollToRow(row int, side align.Side) {
	lh := c.LineHeight()

	row = c.clampRow(side, row)
	targetRow := row
	if t, _, ok := c.transferRow(side, row, 0); ok {
		targetRow = t
	}

	c.place(side, row, lh)
	c.place(side.Other(), targetRow, lh)
}

// place positions one pane so row sits at the anchor fraction, recording
// the write as an echo.
func (c *Controller) place(side align.Side, row int, lh float64) {
	anchorPx := c.panes[side].ViewportPx * c.cfg.AnchorFraction
	offset := clamp(float64(row)*lh-anchorPx, 0, c.panes[side].maxOffset())
	c.panes[side].OffsetPx = offset
	c.lastSet[side] = offset
}

// syncFrom propagates the source pane's position to the other pane.
func (c *Controller) syncFrom(source align.Side) {
	target := source.Other()
	lh := c.LineHeight()

	// Logical row under the anchor point, with sub-row remainder kept for
	// smooth positioning.
	anchorPx := c.panes[source].ViewportPx * c.cfg.AnchorFraction
	anchored := c.panes[source].OffsetPx + anchorPx
	sourceRow := int(anchored / lh)
	subRow := math.Mod(anchored, lh)

	targetRow, targetSub, ok := c.transferRow(source, sourceRow, subRow)
	if !ok {
		return
	}

	targetPx := clamp(float64(targetRow)*lh+targetSub-anchorPx, 0, c.panes[target].maxOffset())
	if math.Abs(targetPx-c.panes[target].OffsetPx) <= c.cfg.ApplyThresholdPx {
		return
	}

	c.panes[target].OffsetPx = targetPx
	c.lastSet[target] = targetPx
}

// TransferRow maps a row in side coordinates to the corresponding row on
// the other side. Returns false when no alignments are loaded.
func (c *Controller) TransferRow(side align.Side, row int) (int, bool) {
	t, _, ok := c.transferRow(side, row, 0)
	return t, ok
}

// transferRow is the core row mapping. Boundaries map exactly to the
// counterpart boundary; interior rows interpolate linearly; a zero-length
// target span maps to its start with no sub-row offset (the other pane
// shows the boundary, not a meaningless midpoint). Rows beyond all spans
// extrapolate past the last alignment by constant offset.
//
// The sub-row remainder is scaled by the span length ratio for changed
// regions but passed through unscaled for unchanged regions, which are
// always 1:1. The asymmetry is deliberate; it is load-bearing for the
// anti-jitter behavior.
func (c *Controller) transferRow(source align.Side, row int, subRow float64) (int, float64, bool) {
	if len(c.alignments) == 0 {
		return 0, 0, false
	}
	if row < 0 {
		return 0, 0, true
	}

	for _, a := range c.alignments {
		src := a.Span(source)
		dst := a.Span(source.Other())

		if row == src.Start {
			return dst.Start, scaleSub(a, src, dst, subRow), true
		}
		if !src.Contains(row) {
			continue
		}

		if dst.IsEmpty() {
			// Pure insertion/deletion on the other side.
			return dst.Start, 0, true
		}
		if src.IsEmpty() {
			return dst.Start, 0, true
		}

		ratio := float64(row-src.Start) / float64(src.Len())
		target := dst.Start + int(math.Floor(ratio*float64(dst.Len())))
		if target > dst.End-1 {
			target = dst.End - 1
		}
		return target, scaleSub(a, src, dst, subRow), true
	}

	// Beyond all spans: clamp to the last alignment and extrapolate by
	// constant offset past its end.
	last := c.alignments[len(c.alignments)-1]
	src := last.Span(source)
	dst := last.Span(source.Other())
	if row == src.End {
		return dst.End, scaleSub(last, src, dst, subRow), true
	}
	return dst.End + (row - src.End), subRow, true
}

// scaleSub applies the sub-row offset scaling rule for an alignment.
func scaleSub(a align.Alignment, src, dst align.Span, subRow float64) float64 {
	if !a.Changed {
		return subRow
	}
	if src.Len() == 0 || dst.Len() == 0 {
		return 0
	}
	return subRow * float64(dst.Len()) / float64(src.Len())
}

// clampRow bounds a requested row to the side's covered range. Out-of-range
// requests are not an error; they clamp silently.
func (c *Controller) clampRow(side align.Side, row int) int {
	if row < 0 {
		return 0
	}
	if len(c.alignments) == 0 {
		return row
	}
	end := c.alignments[len(c.alignments)-1].Span(side).End
	if end > 0 && row >= end {
		return end - 1
	}
	return row
}

// isEcho checks a scroll event against a pending programmatic write. A
// match consumes the tracker.
func (c *Controller) isEcho(pending *float64, value, window float64) bool {
	if math.IsNaN(*pending) {
		return false
	}
	if math.Abs(value-*pending) <= window {
		*pending = math.NaN()
		return true
	}
	// The event moved past our write; the echo will never arrive.
	*pending = math.NaN()
	return false
}

func (c *Controller) clearEchoes() {
	for i := range c.lastSet {
		c.lastSet[i] = math.NaN()
		c.lastSetX[i] = math.NaN()
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if hi > lo && v > hi {
		return hi
	}
	return v
}
