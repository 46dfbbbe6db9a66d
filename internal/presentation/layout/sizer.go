package layout

import (
	"os"

	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
	minWidth       = 40
)

// Sizer holds the drawable terminal size
type Sizer struct {
	Width  int
	Height int
}

// NewSizer creates a sizer for a known size
func NewSizer(width, height int) *Sizer {
	return &Sizer{Width: width, Height: height}
}

// DetectSizer reads the size of stdout, falling back to 80x24 when stdout is
// not a terminal
func DetectSizer() *Sizer {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return NewSizer(fallbackWidth, fallbackHeight)
	}
	return NewSizer(w, h)
}

// Clamp keeps the width within a usable range for the editor
func (s *Sizer) Clamp() *Sizer {
	if s.Width < minWidth {
		s.Width = minWidth
	}
	if s.Height < 1 {
		s.Height = fallbackHeight
	}
	return s
}
