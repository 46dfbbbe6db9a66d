package formatter

import (
	"errors"
	"fmt"
	"io"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// ErrUnknownFormat is returned for an unsupported output name
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter writes a snapshot of the editor state
type Formatter interface {
	Format(w io.Writer, st model.EditorState) error
}

// Names lists the supported output formats
var Names = []string{"table", "json", "timeline"}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "", "table":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "timeline":
		return NewTimelineFormatter(100), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
