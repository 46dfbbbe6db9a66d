package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/presentation/layout"
	"github.com/penwyp/go-timeline-editor/internal/util"
	"github.com/stretchr/testify/assert"
)

func newTestDisplay() (*TerminalDisplay, *bytes.Buffer) {
	var buf bytes.Buffer
	td := NewTerminalDisplayWriter(&DisplayConfig{
		BasePixelsPerSecond: 50,
		PixelsPerColumn:     10,
		HeaderWidth:         12,
	}, &buf)
	return td, &buf
}

func testState() model.EditorState {
	st := model.NewEditorState()
	st.Tracks = []model.Track{{
		ID: "t1", Kind: model.TrackVideo, Name: "Video 1",
		Elements: []model.Element{{ID: "e1", Kind: model.TrackVideo, Name: "clip", Duration: 4}},
	}}
	st.CurrentTime = 3
	return st
}

func TestAlternateScreen(t *testing.T) {
	td, buf := newTestDisplay()

	td.EnterAlternateScreen()
	td.EnterAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.EnterAltScreen))
	assert.Contains(t, buf.String(), util.EnableMouseTracking)

	buf.Reset()
	td.ExitAlternateScreen()
	out := buf.String()
	assert.Contains(t, out, util.ExitAltScreen)
	assert.Contains(t, out, util.DisableMouseTracking)
	assert.Contains(t, out, util.ShowCursor)

	buf.Reset()
	td.ExitAlternateScreen()
	assert.Empty(t, buf.String())
}

func TestRenderOnlyRewritesChangedRows(t *testing.T) {
	td, buf := newTestDisplay()
	size := layout.NewSizer(60, 20)
	st := testState()

	td.RenderWithState(st, model.InteractionState{}, size)
	first := buf.String()
	assert.Contains(t, first, util.ClearScreen)
	assert.Contains(t, first, "[clip")

	buf.Reset()
	td.RenderWithState(st, model.InteractionState{}, size)
	assert.Empty(t, buf.String(), "identical frame should not be repainted")

	buf.Reset()
	st.IsPlaying = true
	td.RenderWithState(st, model.InteractionState{}, size)
	out := buf.String()
	assert.Contains(t, out, "▶ Playing")
	assert.NotContains(t, out, "[clip")
	assert.NotContains(t, out, util.ClearScreen)
}

func TestRenderClearsOnModeChange(t *testing.T) {
	td, buf := newTestDisplay()
	size := layout.NewSizer(60, 30)
	st := testState()

	td.RenderWithState(st, model.InteractionState{}, size)
	buf.Reset()

	td.RenderWithState(st, model.InteractionState{ShowHelp: true}, size)
	out := buf.String()
	assert.Contains(t, out, util.ClearScreen)
	assert.Contains(t, out, "Keyboard shortcuts")
	assert.Contains(t, out, "Play / pause")
}

func TestRenderConfirmDialog(t *testing.T) {
	td, buf := newTestDisplay()
	size := layout.NewSizer(80, 24)

	dialog := &model.ConfirmDialog{
		Title:   "Quit",
		Message: "The timeline has unsaved edits. Quit anyway?",
	}
	td.RenderWithState(testState(), model.InteractionState{ConfirmDialog: dialog}, size)

	out := buf.String()
	assert.Contains(t, out, "Quit")
	assert.Contains(t, out, "unsaved edits")
	assert.Contains(t, out, "(Y)es / (N)o")
}

func TestRenderTruncatesToHeight(t *testing.T) {
	td, _ := newTestDisplay()
	size := layout.NewSizer(60, 2)

	td.RenderWithState(testState(), model.InteractionState{LayoutStyle: model.LayoutMinimal}, size)
	assert.Len(t, td.previousScreen, 2)
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 10, []string{}},
		{"fits", "short", 10, []string{"short"}},
		{"wraps", "one two three four", 9, []string{"one two", "three", "four"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width))
		})
	}
}
