package geometry

import (
	"math"
)

// Mapper converts between timeline seconds and horizontal pixels at a zoom
// level. It is a value type; build a new one after every zoom change.
type Mapper struct {
	BasePixelsPerSecond float64
	ZoomLevel           float64
}

// NewMapper creates a mapper for the given base scale and zoom
func NewMapper(basePixelsPerSecond, zoomLevel float64) Mapper {
	return Mapper{BasePixelsPerSecond: basePixelsPerSecond, ZoomLevel: zoomLevel}
}

// PixelsPerSecond is the effective scale at the current zoom
func (m Mapper) PixelsPerSecond() float64 {
	return m.BasePixelsPerSecond * m.ZoomLevel
}

// TimeToPixels maps seconds to pixels
func (m Mapper) TimeToPixels(t float64) float64 {
	return t * m.PixelsPerSecond()
}

// PixelsToTime maps pixels to seconds. A degenerate scale maps everything
// to zero.
func (m Mapper) PixelsToTime(p float64) float64 {
	scale := m.PixelsPerSecond()
	if scale <= 0 || math.IsNaN(scale) {
		return 0
	}
	return p / scale
}

// Layout places the time axis behind a fixed header gutter on a grid of
// character columns. Offset is the number of content columns scrolled out
// of view on the left.
type Layout struct {
	Mapper
	HeaderColumns   int
	PixelsPerColumn float64
	Offset          int
}

// HeaderWidth is the gutter width in pixels
func (l Layout) HeaderWidth() float64 {
	return float64(l.HeaderColumns) * l.PixelsPerColumn
}

// ClickToTime converts a pointer position measured from the left edge of the
// row, gutter included, to a time clamped to [0, total].
func (l Layout) ClickToTime(p, total float64) float64 {
	t := l.PixelsToTime(p - l.HeaderWidth() + float64(l.Offset)*l.PixelsPerColumn)
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > total {
		return math.Max(total, 0)
	}
	return t
}

// ColumnToTime converts an absolute 0-based terminal column to a time
func (l Layout) ColumnToTime(col int, total float64) float64 {
	return l.ClickToTime(float64(col)*l.PixelsPerColumn, total)
}

// TimeToColumn returns the unscrolled content column holding time t
func (l Layout) TimeToColumn(t float64) int {
	if l.PixelsPerColumn <= 0 {
		return 0
	}
	return int(math.Floor(l.TimeToPixels(t)/l.PixelsPerColumn + 1e-9))
}

// SecondsPerColumn is the time span one content column covers
func (l Layout) SecondsPerColumn() float64 {
	return l.PixelsToTime(l.PixelsPerColumn)
}

// ViewOffset picks the scroll offset that keeps the playhead visible in a
// content area of the given width. The view stays at the origin until the
// playhead leaves the first screen, then keeps it centred.
func (l Layout) ViewOffset(playhead float64, contentColumns int) int {
	if contentColumns <= 0 {
		return 0
	}
	col := l.TimeToColumn(playhead)
	if col < contentColumns {
		return 0
	}
	return col - contentColumns/2
}
