package layout

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParam() model.LayoutParam {
	return model.LayoutParam{
		BasePixelsPerSecond: 50,
		PixelsPerColumn:     10,
		HeaderWidth:         10,
		Width:               40,
	}
}

func testState() model.EditorState {
	st := model.NewEditorState()
	st.SourceURL = "https://cdn.example.com/media/movie.mp4?sig=abc"
	st.Tracks = []model.Track{{
		ID:   "t1",
		Kind: model.TrackVideo,
		Name: "Video 1",
		Elements: []model.Element{{
			ID: "e1", Kind: model.TrackVideo, Name: "clip", Duration: 2,
		}},
	}}
	st.CurrentTime = 3
	return st
}

// content strips the gutter from a rendered row
func content(row string) []rune {
	parts := strings.SplitN(row, "│", 2)
	if len(parts) < 2 {
		return nil
	}
	return []rune(parts[1])
}

func TestGetLayoutStrategy(t *testing.T) {
	tests := []struct {
		name        string
		layoutStyle int
		wantName    string
		wantTop     int
	}{
		{"full", model.LayoutFull, "Full", 3},
		{"minimal", model.LayoutMinimal, "Minimal", 1},
		{"unknown_defaults_to_full", 99, "Full", 3},
		{"negative_defaults_to_full", -1, "Full", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GetLayoutStrategy(tt.layoutStyle)
			require.NotNil(t, s)
			assert.Equal(t, tt.wantName, s.GetName())
			assert.Equal(t, tt.wantTop, s.ContentTop())
		})
	}
}

func TestTrackRow(t *testing.T) {
	b := &BaseStrategy{}
	st := testState()
	v := b.NewView(st, testParam())

	row := b.TrackRow(st.Tracks[0], st, v)
	assert.Equal(t, "V Video 1│[clip====]     │              ", row)

	st.SelectedElementIDs = []string{"e1"}
	row = b.TrackRow(st.Tracks[0], st, v)
	assert.Contains(t, row, "{clip====}")
}

func TestTrackRowZoomStretchesBlocks(t *testing.T) {
	b := &BaseStrategy{}
	st := testState()
	st.CurrentTime = 1

	v := b.NewView(st, testParam())
	runes := content(b.TrackRow(st.Tracks[0], st, v))
	assert.Equal(t, ']', runes[9])
	assert.Equal(t, '│', runes[5])

	st.ZoomLevel = 2
	v = b.NewView(st, testParam())
	runes = content(b.TrackRow(st.Tracks[0], st, v))
	assert.Equal(t, ']', runes[19])
	assert.Equal(t, '│', runes[10])
}

func TestTrackRowWideRunes(t *testing.T) {
	b := &BaseStrategy{}
	st := model.NewEditorState()
	st.Tracks = []model.Track{{
		ID: "t1", Kind: model.TrackText, Name: "Text 1",
		Elements: []model.Element{{
			ID: "e1", Kind: model.TrackText, Content: "字幕", Duration: 2, FontSize: 48,
		}},
	}}
	st.CurrentTime = 3
	v := b.NewView(st, testParam())

	row := b.TrackRow(st.Tracks[0], st, v)
	assert.Contains(t, row, "[字幕----]")
	assert.Equal(t, 40, runewidth.StringWidth(row))
}

func TestRuler(t *testing.T) {
	b := &BaseStrategy{}
	st := testState()
	v := b.NewView(st, testParam())

	assert.Equal(t, 2.0, b.TickStep(v))

	marks := content(b.RulerMarks(st, v))
	require.Len(t, marks, 30)
	for _, col := range []int{0, 10, 20} {
		assert.Equal(t, '┬', marks[col], "tick at column %d", col)
	}
	assert.Equal(t, '▼', marks[15])
	assert.Equal(t, '─', marks[1])

	labels := b.RulerLabels(st, v)
	assert.True(t, strings.HasPrefix(labels, "0:03.0/0"))
	runes := content(labels)
	assert.Equal(t, "0:02", string(runes[10:14]))
	assert.Equal(t, "0:04", string(runes[20:24]))
}

func TestTickStepShrinksWithZoom(t *testing.T) {
	b := &BaseStrategy{}
	st := testState()
	st.ZoomLevel = 4
	assert.Equal(t, 0.5, b.TickStep(b.NewView(st, testParam())))
}

func TestRulerScrollsWithPlayhead(t *testing.T) {
	b := &BaseStrategy{}
	st := testState()
	st.Tracks[0].Elements[0].Duration = 12
	st.CurrentTime = 10
	v := b.NewView(st, testParam())

	assert.Equal(t, 35, v.Layout.Offset)
	marks := content(b.RulerMarks(st, v))
	assert.Equal(t, '▼', marks[15])
	assert.Equal(t, '┬', marks[5])
}

func TestFullRender(t *testing.T) {
	s := &FullLayoutStrategy{}
	st := testState()
	p := testParam()
	p.StatusMessage = "Split 1 element(s)"

	lines := s.Render(st, p)
	require.Len(t, lines, 9)
	assert.Contains(t, lines[0], "movie.mp4")
	assert.Contains(t, lines[s.ContentTop()-1], "0:02")
	assert.Contains(t, lines[4], "[clip")
	assert.Contains(t, lines[7], "■ Paused")
	assert.Equal(t, "Split 1 element(s)", lines[8])

	for _, l := range lines {
		assert.NotContains(t, l, "\033", "plain output must not contain escapes")
		assert.LessOrEqual(t, runewidth.StringWidth(l), p.Width)
	}
}

func TestFullRenderColor(t *testing.T) {
	s := &FullLayoutStrategy{}
	st := testState()
	st.SelectedElementIDs = []string{"e1"}
	p := testParam()
	p.Color = true

	joined := strings.Join(s.Render(st, p), "\n")
	assert.Contains(t, joined, "\033[7m")
}

func TestFullRenderEmpty(t *testing.T) {
	s := &FullLayoutStrategy{}
	lines := s.Render(model.NewEditorState(), testParam())
	assert.Contains(t, strings.Join(lines, "\n"), "(no tracks")
}

func TestFullRenderKeepsFooterOnShortScreens(t *testing.T) {
	s := &FullLayoutStrategy{}
	st := testState()
	for i := 0; i < 5; i++ {
		st.Tracks = append(st.Tracks, model.Track{ID: "x", Kind: model.TrackAudio, Name: "Audio"})
	}
	p := testParam()
	p.Height = 8

	lines := s.Render(st, p)
	assert.Len(t, lines, 8)
	assert.Contains(t, lines[7], "Paused")
}

func TestMinimalRender(t *testing.T) {
	s := &MinimalLayoutStrategy{}
	st := testState()
	lines := s.Render(st, testParam())
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "┬")
	assert.Contains(t, lines[1], "[clip")
}

func TestStatusLine(t *testing.T) {
	b := &BaseStrategy{}
	st := testState()
	st.IsPlaying = true
	st.Muted = true
	st.Volume = 0.8
	st.Speed = 1.5
	st.SnappingEnabled = false

	line := b.StatusLine(st)
	assert.Contains(t, line, "▶ Playing")
	assert.Contains(t, line, "0:03.0 / 0:02.0")
	assert.Contains(t, line, "vol 80% (muted)")
	assert.Contains(t, line, "speed 1.5x")
	assert.Contains(t, line, "snap off")
}

func TestInspector(t *testing.T) {
	b := &BaseStrategy{}
	st := testState()
	assert.Contains(t, b.Inspector(st), "No selection")
	assert.NotContains(t, b.Inspector(st), "Preview")

	st.CurrentTime = 1.5
	assert.Contains(t, b.Inspector(st), "Preview: clip at 1.50s")

	st.SelectedElementIDs = []string{"e1"}
	line := b.Inspector(st)
	assert.Contains(t, line, `"clip"`)
	assert.Contains(t, line, "length 2.00s")

	st.SelectedElementIDs = []string{"e1", "e2"}
	assert.Equal(t, "2 elements selected", b.Inspector(st))
}

func TestSizer(t *testing.T) {
	s := NewSizer(20, 0).Clamp()
	assert.Equal(t, 40, s.Width)
	assert.Equal(t, 24, s.Height)

	s = NewSizer(120, 30).Clamp()
	assert.Equal(t, 120, s.Width)
	assert.Equal(t, 30, s.Height)
}
