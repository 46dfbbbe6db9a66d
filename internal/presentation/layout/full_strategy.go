package layout

import (
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// FullLayoutStrategy draws the title, ruler, every track, an inspector for
// the selection and the status bar
type FullLayoutStrategy struct {
	BaseStrategy
}

// GetName returns the strategy name
func (f *FullLayoutStrategy) GetName() string {
	return "Full"
}

// ContentTop is the row of the ruler labels
func (f *FullLayoutStrategy) ContentTop() int {
	return 3
}

// Render implements LayoutStrategy
func (f *FullLayoutStrategy) Render(st model.EditorState, p model.LayoutParam) []string {
	v := f.NewView(st, p)
	sep := util.FormatSectionSeparator(v.Width)

	lines := []string{
		f.Title(st, v),
		sep,
		f.RulerLabels(st, v),
		f.RulerMarks(st, v),
	}

	tracks := make([]string, 0, len(st.Tracks))
	for _, t := range st.Tracks {
		tracks = append(tracks, f.TrackRow(t, st, v))
	}
	if len(tracks) == 0 {
		tracks = append(tracks, f.Fit(f.Gutter("", v)+" (no tracks, press t to add text)", v))
	}

	footer := []string{
		sep,
		f.Fit(f.Inspector(st), v),
		f.Fit(f.StatusLine(st), v),
	}
	if p.StatusMessage != "" {
		footer = append(footer, util.Colorize(f.Fit(p.StatusMessage, v), util.ColorCyan, v.Color))
	}

	// Keep the footer visible on short screens by dropping trailing tracks
	if p.Height > 0 {
		room := p.Height - len(lines) - len(footer)
		if room < 1 {
			room = 1
		}
		if len(tracks) > room {
			tracks = tracks[:room]
		}
	}

	lines = append(lines, tracks...)
	return append(lines, footer...)
}
