package editor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/penwyp/go-timeline-editor/internal/config"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/core/playback"
	"github.com/penwyp/go-timeline-editor/internal/presentation/interaction"
	"github.com/penwyp/go-timeline-editor/internal/presentation/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	mu      sync.Mutex
	entered bool
	exited  bool
	renders int
	last    model.InteractionState
}

func (d *fakeDisplay) EnterAlternateScreen() { d.mu.Lock(); d.entered = true; d.mu.Unlock() }
func (d *fakeDisplay) ExitAlternateScreen()  { d.mu.Lock(); d.exited = true; d.mu.Unlock() }
func (d *fakeDisplay) ClearForTransition()   {}

func (d *fakeDisplay) RenderWithState(_ model.EditorState, state model.InteractionState, _ *layout.Sizer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renders++
	d.last = state
}

type fakeInput struct {
	events chan interaction.KeyEvent
	closed bool
}

func (i *fakeInput) Events() <-chan interaction.KeyEvent { return i.events }
func (i *fakeInput) Close() error                        { i.closed = true; return nil }

func char(r rune) interaction.KeyEvent {
	return interaction.KeyEvent{Type: interaction.KeyChar, Key: r}
}

func ctrl(r rune) interaction.KeyEvent {
	return interaction.KeyEvent{Type: interaction.KeyCtrl, Key: r}
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *fakeDisplay, *fakeInput) {
	t.Helper()
	opts := &Options{SourceURL: "https://cdn.example.com/intro.mp4", Duration: 10}
	require.NoError(t, opts.Validate())

	store, err := NewStore(opts.Config)
	require.NoError(t, err)
	store.InitializeWithVideo(opts.SourceURL, opts.Duration)

	disp := &fakeDisplay{}
	input := &fakeInput{events: make(chan interaction.KeyEvent, 8)}
	player := playback.NewClockPlayer(opts.Duration, 10*time.Millisecond)
	sizer := func() *layout.Sizer { return layout.NewSizer(80, 24) }

	o := newOrchestrator(opts, store, player, disp, input, sizer)
	o.resize()
	return o, disp, input
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{"missing_source", Options{Duration: 10}, ErrNoSource},
		{"zero_duration", Options{SourceURL: "a.mp4"}, ErrInvalidDuration},
		{"bad_config", Options{SourceURL: "a.mp4", Duration: 1, Config: &config.EditorConfig{ZoomStep: 0.5}}, config.ErrInvalidConfig},
		{"defaults", Options{SourceURL: "a.mp4", Duration: 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, tt.opts.Config)
			assert.Equal(t, 14, tt.opts.Config.HeaderWidth)
		})
	}
}

func TestHandleKeyboardEdits(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)

	assert.False(t, o.handleKeyboard(ctrl('s')))
	assert.Equal(t, "Nothing to split at playhead", o.stateManager.GetInteractionState().StatusMessage)

	o.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyRight, Shift: true})
	assert.InDelta(t, 5.0, o.store.State().CurrentTime, 1e-9)

	o.handleKeyboard(ctrl('s'))
	assert.Len(t, o.store.State().Tracks[0].Elements, 2)
	assert.Equal(t, "Split 1 element(s)", o.stateManager.GetInteractionState().StatusMessage)

	o.handleKeyboard(ctrl('z'))
	assert.Len(t, o.store.State().Tracks[0].Elements, 1)
}

func TestHandleKeyboardHelp(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)

	o.handleKeyboard(char('?'))
	assert.True(t, o.stateManager.GetInteractionState().ShowHelp)

	// Editing keys are ignored while help is open
	o.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyRight})
	assert.Equal(t, 0.0, o.store.State().CurrentTime)

	o.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyEscape})
	assert.False(t, o.stateManager.GetInteractionState().ShowHelp)
}

func TestHandleKeyboardLayout(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)

	o.handleKeyboard(char('v'))
	state := o.stateManager.GetInteractionState()
	assert.Equal(t, model.LayoutMinimal, state.LayoutStyle)
	assert.Equal(t, "Minimal layout", state.StatusMessage)

	o.handleKeyboard(char('v'))
	assert.Equal(t, model.LayoutFull, o.stateManager.GetInteractionState().LayoutStyle)
}

func TestQuitWithoutEdits(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	assert.True(t, o.handleKeyboard(char('q')))
}

func TestQuitAsksAfterEdits(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	o.handleKeyboard(char('t'))
	require.True(t, o.store.CanUndo())

	assert.False(t, o.handleKeyboard(char('q')))
	require.NotNil(t, o.stateManager.GetInteractionState().ConfirmDialog)

	// Other keys are swallowed by the dialog
	assert.False(t, o.handleKeyboard(char(' ')))
	assert.False(t, o.store.State().IsPlaying)

	assert.False(t, o.handleKeyboard(char('n')))
	assert.Nil(t, o.stateManager.GetInteractionState().ConfirmDialog)

	assert.False(t, o.handleKeyboard(char('q')))
	assert.True(t, o.handleKeyboard(char('y')))
}

func TestRunStopsOnQuit(t *testing.T) {
	o, disp, input := newTestOrchestrator(t)

	done := make(chan error, 1)
	go func() { done <- o.Run(context.Background()) }()

	input.events <- interaction.KeyEvent{Type: interaction.KeyRight}
	input.events <- char('q')

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after quit")
	}

	disp.mu.Lock()
	defer disp.mu.Unlock()
	assert.True(t, disp.entered)
	assert.True(t, disp.exited)
	assert.Positive(t, disp.renders)
	assert.True(t, input.closed)
	assert.InDelta(t, 1.0, o.store.State().CurrentTime, 1e-9)
}

func TestRunStopsOnCancel(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- o.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStateManagerStatusExpiry(t *testing.T) {
	sm := NewStateManager(time.Second)
	now := time.Unix(1000, 0)

	assert.False(t, sm.ExpireStatus(now))

	sm.SetStatusMessage("Undo", now)
	assert.False(t, sm.ExpireStatus(now.Add(500*time.Millisecond)))
	assert.Equal(t, "Undo", sm.GetInteractionState().StatusMessage)

	assert.True(t, sm.ExpireStatus(now.Add(time.Second)))
	assert.Empty(t, sm.GetInteractionState().StatusMessage)
}
