package tui

// cellMetrics reports line height in terminal cells: one row per line.
// The sync engine stays pixel-based; in the terminal a "pixel" is a row.
type cellMetrics struct{}

func (cellMetrics) MeasureLineHeight() float64 { return 1 }
