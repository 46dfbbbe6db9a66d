package editor

import (
	"context"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/core/playback"
	"github.com/penwyp/go-timeline-editor/internal/presentation/interaction"
	"github.com/penwyp/go-timeline-editor/internal/presentation/layout"
)

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// ClearForTransition wipes the screen before the next frame
	ClearForTransition()
	// RenderWithState renders the editor with the given interaction state
	RenderWithState(st model.EditorState, state model.InteractionState, size *layout.Sizer)
}

// InputHandler processes keyboard and other input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// FileMonitor watches for file changes
type FileMonitor interface {
	// Events returns a channel of file change events
	Events() <-chan model.FileEvent
	// Close stops monitoring and cleans up resources
	Close() error
}

// MediaClock is a player that needs a running loop to advance time
type MediaClock interface {
	playback.MediaPlayer
	Run(ctx context.Context) error
}
