package playback

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/core/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	mu       sync.Mutex
	position float64
	playing  bool
	volume   float64
	muted    bool
	rate     float64
	calls    []string
	updates  chan float64
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{updates: make(chan float64, 8)}
}

func (f *fakePlayer) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakePlayer) Play() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = true
	f.record("play")
}

func (f *fakePlayer) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = false
	f.record("pause")
}

func (f *fakePlayer) Seek(t float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = t
	f.record(fmt.Sprintf("seek %.2f", t))
}

func (f *fakePlayer) Position() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakePlayer) SetVolume(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
	f.record(fmt.Sprintf("volume %.2f", v))
}

func (f *fakePlayer) SetMuted(m bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = m
	f.record(fmt.Sprintf("muted %v", m))
}

func (f *fakePlayer) SetRate(r float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = r
	f.record(fmt.Sprintf("rate %.2f", r))
}

func (f *fakePlayer) TimeUpdates() <-chan float64 { return f.updates }

// report simulates the media element reaching position t
func (f *fakePlayer) report(t float64) {
	f.mu.Lock()
	f.position = t
	f.mu.Unlock()
	f.updates <- t
}

func (f *fakePlayer) takeCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.calls
	f.calls = nil
	return out
}

func waitForCall(t *testing.T, f *fakePlayer, call string) {
	t.Helper()
	require.Eventually(t, func() bool {
		for _, c := range f.takeCalls() {
			if c == call {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond)
}

func newSyncedStore(t *testing.T) (*timeline.Store, *fakePlayer, *Synchronizer) {
	t.Helper()
	store, err := timeline.NewStore(timeline.Config{})
	require.NoError(t, err)
	store.InitializeWithVideo("clip.mp4", 10)

	player := newFakePlayer()
	s := NewSynchronizer(store, player, 0.25)
	store.Subscribe(func(_ model.EditorState) { s.Reconcile() })
	s.Reconcile()
	player.takeCalls()
	return store, player, s
}

func TestReconcilePrimesPlayer(t *testing.T) {
	store, err := timeline.NewStore(timeline.Config{})
	require.NoError(t, err)
	player := newFakePlayer()

	NewSynchronizer(store, player, 0).Reconcile()

	assert.Equal(t, []string{"volume 1.00", "muted false", "rate 1.00", "pause"}, player.takeCalls())
}

func TestSeekWhilePausedMovesPlayer(t *testing.T) {
	store, player, _ := newSyncedStore(t)

	store.Seek(4)

	assert.Equal(t, []string{"seek 4.00"}, player.takeCalls())
	assert.Equal(t, 4.0, player.Position())
}

func TestSmallDriftIsNotCorrected(t *testing.T) {
	store, player, _ := newSyncedStore(t)
	player.position = 4.1

	store.Seek(4)

	assert.Empty(t, player.takeCalls())
}

func TestPlayAndPauseAreMirroredOnce(t *testing.T) {
	store, player, _ := newSyncedStore(t)

	store.Play()
	store.ZoomIn()
	store.Pause()

	assert.Equal(t, []string{"play", "pause"}, player.takeCalls())
}

func TestVolumeMuteSpeedMirroredOnChange(t *testing.T) {
	store, player, _ := newSyncedStore(t)

	store.SetVolume(0.5)
	store.ToggleMute()
	store.SetSpeed(2)
	store.ToggleSnapping()

	assert.Equal(t, []string{"volume 0.50", "muted true", "rate 2.00"}, player.takeCalls())
}

func TestRunFeedsPlayerTimeIntoStore(t *testing.T) {
	store, err := timeline.NewStore(timeline.Config{})
	require.NoError(t, err)
	store.InitializeWithVideo("clip.mp4", 10)
	player := newFakePlayer()
	s := NewSynchronizer(store, player, 0.25)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	waitForCall(t, player, "pause")

	store.Play()
	player.report(1.5)
	require.Eventually(t, func() bool { return store.State().CurrentTime == 1.5 }, time.Second, time.Millisecond)

	// Reaching the end pauses the store
	player.report(10)
	require.Eventually(t, func() bool { return !store.State().IsPlaying }, time.Second, time.Millisecond)
	assert.Equal(t, 10.0, store.State().CurrentTime)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRunReturnsWhenUpdatesClose(t *testing.T) {
	store, err := timeline.NewStore(timeline.Config{})
	require.NoError(t, err)
	player := newFakePlayer()
	close(player.updates)

	assert.NoError(t, NewSynchronizer(store, player, 0).Run(context.Background()))
}

func TestClockPlayerDrivesStore(t *testing.T) {
	store, err := timeline.NewStore(timeline.Config{})
	require.NoError(t, err)
	store.InitializeWithVideo("clip.mp4", 0.2)

	player := NewClockPlayer(0, 5*time.Millisecond)
	s := NewSynchronizer(store, player, 0.25)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = player.Run(ctx) }()
	go func() { _ = s.Run(ctx) }()

	store.Play()

	require.Eventually(t, func() bool {
		st := store.State()
		return !st.IsPlaying && st.CurrentTime == 0.2
	}, 2*time.Second, 5*time.Millisecond)
}
