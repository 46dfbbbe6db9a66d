package playback

import (
	"context"
	"math"
	"sync"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/core/timeline"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// DefaultEpsilon is the drift in seconds tolerated before the player is
// re-seeked to the store's playhead
const DefaultEpsilon = 0.25

// Store is the part of the timeline store the synchronizer needs
type Store interface {
	State() model.EditorState
	SyncTime(t float64) bool
	Subscribe(fn timeline.Observer) func()
}

type mirrored struct {
	playing  bool
	volume   float64
	muted    bool
	speed    float64
	duration float64
}

// Synchronizer keeps a MediaPlayer and the store in step. State changes flow
// to the player; the player's position flows back through SyncTime. Drift
// below Epsilon is not corrected, which stops the two directions from
// feeding each other.
type Synchronizer struct {
	store   Store
	player  MediaPlayer
	epsilon float64

	mu     sync.Mutex
	last   mirrored
	primed bool
}

// NewSynchronizer binds store and player. A non-positive epsilon uses
// DefaultEpsilon.
func NewSynchronizer(store Store, player MediaPlayer, epsilon float64) *Synchronizer {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Synchronizer{store: store, player: player, epsilon: epsilon}
}

// Reconcile pushes the store's current state to the player, touching only
// what changed since the last call
func (s *Synchronizer) Reconcile() {
	st := s.store.State()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := mirrored{
		playing:  st.IsPlaying,
		volume:   st.Volume,
		muted:    st.Muted,
		speed:    st.Speed,
		duration: st.TotalDuration(),
	}

	if ds, ok := s.player.(DurationSetter); ok && (!s.primed || next.duration != s.last.duration) {
		ds.SetDuration(next.duration)
	}
	if !s.primed || next.volume != s.last.volume {
		s.player.SetVolume(next.volume)
	}
	if !s.primed || next.muted != s.last.muted {
		s.player.SetMuted(next.muted)
	}
	if !s.primed || next.speed != s.last.speed {
		s.player.SetRate(next.speed)
	}
	if drift := math.Abs(st.CurrentTime - s.player.Position()); drift > s.epsilon {
		util.LogDebug("Player drifted, seeking", util.F("drift", drift), util.F("to", st.CurrentTime))
		s.player.Seek(st.CurrentTime)
	}
	if !s.primed || next.playing != s.last.playing {
		if next.playing {
			s.player.Play()
		} else {
			s.player.Pause()
		}
	}

	s.last = next
	s.primed = true
}

// Run subscribes to the store and feeds the player's position back into it
// until ctx is done or the player closes its update channel
func (s *Synchronizer) Run(ctx context.Context) error {
	unsubscribe := s.store.Subscribe(func(model.EditorState) { s.Reconcile() })
	defer unsubscribe()

	s.Reconcile()

	updates := s.player.TimeUpdates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-updates:
			if !ok {
				return nil
			}
			// Read the position at handling time so a queued update never
			// rewinds the playhead past a later seek.
			s.store.SyncTime(s.player.Position())
		}
	}
}
