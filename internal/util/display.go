package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal colors
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorGray    = "\033[90m"
	ColorBold    = "\033[1m"
	ColorReverse = "\033[7m"
)

// Terminal control sequences
const (
	ClearScreen          = "\033[2J"
	ClearLine            = "\033[2K"
	ClearLineFromCursor  = "\033[0K"
	ClearScrollback      = "\033[3J"
	ClearToEnd           = "\033[J"
	MoveCursorHome       = "\033[H"
	HideCursor           = "\033[?25l"
	ShowCursor           = "\033[?25h"
	EnterAltScreen       = "\033[?1049h"
	ExitAltScreen        = "\033[?1049l"
	EnableMouseTracking  = "\033[?1000h\033[?1006h"
	DisableMouseTracking = "\033[?1006l\033[?1000l"
)

// GetDisplayWidth returns the number of terminal columns text occupies
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateToWidth cuts text to at most width columns, marking the cut with
// an ellipsis
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}

// PadToWidth truncates or right-pads text to exactly width columns
func PadToWidth(text string, width int) string {
	text = TruncateToWidth(text, width)
	return runewidth.FillRight(text, width)
}

// Colorize wraps text in the color code when enabled
func Colorize(text, color string, enabled bool) string {
	if !enabled || color == "" {
		return text
	}
	return color + text + ColorReset
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatSectionSeparator creates a visual separator line of the given width
func FormatSectionSeparator(width int) string {
	if width < 1 {
		width = 1
	}
	return strings.Repeat("─", width)
}

// MoveCursor returns ANSI sequence to move cursor to specific position
func MoveCursor(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// CenterText centers text within the given width
func CenterText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return TruncateToWidth(text, width)
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-w)
}
