package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/presentation/layout"
)

// TimelineFormatter prints the same drawing the interactive editor shows,
// without colors
type TimelineFormatter struct {
	width int
}

func NewTimelineFormatter(width int) *TimelineFormatter {
	return &TimelineFormatter{width: width}
}

func (f *TimelineFormatter) Format(w io.Writer, st model.EditorState) error {
	strategy := layout.GetLayoutStrategy(model.LayoutFull)
	lines := strategy.Render(st, model.LayoutParam{Width: f.width})
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
