package layout

import (
	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// LayoutStrategy renders editor state to screen lines. Implementations are
// pure: the same state and parameters always produce the same lines.
type LayoutStrategy interface {
	Render(st model.EditorState, param model.LayoutParam) []string
	GetName() string
	// ContentTop is the first 1-based row showing the time axis
	ContentTop() int
}

// GetLayoutStrategy returns the appropriate layout strategy based on the style
func GetLayoutStrategy(layoutStyle int) LayoutStrategy {
	strategies := map[int]LayoutStrategy{
		model.LayoutFull:    &FullLayoutStrategy{},
		model.LayoutMinimal: &MinimalLayoutStrategy{},
	}

	if strategy, exists := strategies[layoutStyle]; exists {
		return strategy
	}

	// Default to the full layout if invalid style
	return &FullLayoutStrategy{}
}
