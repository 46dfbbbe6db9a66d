package timeline

import (
	"errors"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// ErrInvalidConfig is returned by Config.Validate for contradictory settings
var ErrInvalidConfig = errors.New("invalid timeline config")

// Config controls zoom bounds, history depth and id generation
type Config struct {
	ZoomStep     float64
	ZoomMin      float64
	ZoomMax      float64
	HistoryLimit int

	// NewID generates element and track ids. Defaults to UUID v7.
	NewID func() string
}

// Validate fills defaults and rejects contradictory bounds
func (c *Config) Validate() error {
	if c.ZoomStep == 0 {
		c.ZoomStep = 2
	}
	if c.ZoomMin == 0 {
		c.ZoomMin = 0.1
	}
	if c.ZoomMax == 0 {
		c.ZoomMax = 10
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 100
	}
	if c.NewID == nil {
		c.NewID = newID
	}
	if c.ZoomStep <= 1 || c.ZoomMin <= 0 || c.ZoomMin > c.ZoomMax || c.HistoryLimit < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// newID returns a time-ordered UUID v7, falling back to v4
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Observer receives the committed state after every effective mutation
type Observer func(state model.EditorState)

type subscription struct {
	id int
	fn Observer
}

// Store owns the editor state. Every mutation goes through a named method,
// completes under the lock, and is then published to observers in
// subscription order. Methods never fail: out-of-range arguments are clamped
// or ignored.
type Store struct {
	cfg Config

	mu    sync.RWMutex
	state model.EditorState
	hist  history

	obsMu     sync.Mutex
	observers []subscription
	nextObsID int
}

// NewStore creates an empty store
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		cfg:   cfg,
		state: model.NewEditorState(),
		hist:  newHistory(cfg.HistoryLimit),
	}, nil
}

// State returns a deep copy of the current state
func (s *Store) State() model.EditorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// TotalDuration returns the derived timeline length
func (s *Store) TotalDuration() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.TotalDuration()
}

// Subscribe registers fn and returns a function that removes it
func (s *Store) Subscribe(fn Observer) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, subscription{id: id, fn: fn})

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(state model.EditorState) {
	s.obsMu.Lock()
	subs := make([]subscription, len(s.observers))
	copy(subs, s.observers)
	s.obsMu.Unlock()

	for _, sub := range subs {
		sub.fn(state.Clone())
	}
}

// update runs fn under the write lock. When fn reports a change the
// invariants are restored and observers are notified after unlocking.
func (s *Store) update(fn func(st *model.EditorState) bool) bool {
	s.mu.Lock()
	changed := fn(&s.state)
	var snap model.EditorState
	if changed {
		s.restoreInvariants()
		snap = s.state.Clone()
	}
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}
	return changed
}

// edit is update for structural changes; the previous tracks and selection
// are pushed onto the undo history when fn changes anything.
func (s *Store) edit(fn func(st *model.EditorState) bool) bool {
	return s.update(func(st *model.EditorState) bool {
		before := takeSnapshot(*st)
		if !fn(st) {
			return false
		}
		s.hist.record(before)
		return true
	})
}

// restoreInvariants prunes dangling selection ids and clamps the playhead.
// Caller must hold s.mu.
func (s *Store) restoreInvariants() {
	pruneSelection(&s.state)
	s.state.CurrentTime = clamp(s.state.CurrentTime, 0, s.state.TotalDuration())
}

func pruneSelection(st *model.EditorState) {
	if len(st.SelectedElementIDs) == 0 {
		return
	}
	present := make(map[string]bool)
	for _, t := range st.Tracks {
		for _, e := range t.Elements {
			present[e.ID] = true
		}
	}
	kept := st.SelectedElementIDs[:0]
	for _, id := range st.SelectedElementIDs {
		if present[id] {
			kept = append(kept, id)
		}
	}
	st.SelectedElementIDs = kept
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func trackIndex(st *model.EditorState, trackID string) int {
	for i, t := range st.Tracks {
		if t.ID == trackID {
			return i
		}
	}
	return -1
}

func elementIndex(t *model.Track, elementID string) int {
	for i, e := range t.Elements {
		if e.ID == elementID {
			return i
		}
	}
	return -1
}
