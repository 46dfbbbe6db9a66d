package layout

import (
	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// MinimalLayoutStrategy draws only the tick ruler, the tracks and the status
// bar
type MinimalLayoutStrategy struct {
	BaseStrategy
}

// GetName returns the strategy name
func (m *MinimalLayoutStrategy) GetName() string {
	return "Minimal"
}

// ContentTop is the row of the tick ruler
func (m *MinimalLayoutStrategy) ContentTop() int {
	return 1
}

// Render implements LayoutStrategy
func (m *MinimalLayoutStrategy) Render(st model.EditorState, p model.LayoutParam) []string {
	v := m.NewView(st, p)
	lines := []string{m.RulerMarks(st, v)}
	for _, t := range st.Tracks {
		lines = append(lines, m.TrackRow(t, st, v))
	}
	return append(lines, m.Fit(m.StatusLine(st), v))
}
