package util

import (
	"fmt"
	"math"
)

// FormatTimecode renders seconds as M:SS.d, or H:MM:SS.d past an hour.
// Negative values are shown as zero.
func FormatTimecode(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	tenths := int64(math.Round(seconds * 10))
	h := tenths / 36000
	m := (tenths / 600) % 60
	s := (tenths / 10) % 60
	d := tenths % 10
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%d", h, m, s, d)
	}
	return fmt.Sprintf("%d:%02d.%d", m, s, d)
}

// FormatSeconds renders a length with two decimals and an s suffix
func FormatSeconds(seconds float64) string {
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatPercent renders a 0..1 ratio as a whole percentage
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(ratio*100)))
}

// FormatRate renders a playback rate such as 1x or 1.5x
func FormatRate(rate float64) string {
	if rate == math.Trunc(rate) {
		return fmt.Sprintf("%.0fx", rate)
	}
	return fmt.Sprintf("%gx", math.Round(rate*100)/100)
}

// ShortID returns the first eight characters of an id for display
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
