package editor

import (
	"sync"
	"time"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// StateManager manages front-end state in a thread-safe manner. Timeline
// state lives in the store; this only holds what the screen needs on top.
type StateManager struct {
	mu sync.RWMutex

	interactionState model.InteractionState

	// When the current status message was set
	statusSetAt time.Time
	statusTTL   time.Duration
}

// NewStateManager creates a new StateManager instance
func NewStateManager(statusTTL time.Duration) *StateManager {
	return &StateManager{
		interactionState: model.InteractionState{},
		statusTTL:        statusTTL,
	}
}

// GetInteractionState returns current interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.interactionState
}

// SetInteractionState updates interaction state
func (sm *StateManager) SetInteractionState(state model.InteractionState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.interactionState = state
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.interactionState)
}

// SetStatusMessage shows msg until it expires
func (sm *StateManager) SetStatusMessage(msg string, now time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.interactionState.StatusMessage = msg
	sm.statusSetAt = now
}

// ExpireStatus clears a status message older than the TTL. Returns true
// when a message was cleared.
func (sm *StateManager) ExpireStatus(now time.Time) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.interactionState.StatusMessage == "" || now.Sub(sm.statusSetAt) < sm.statusTTL {
		return false
	}
	sm.interactionState.StatusMessage = ""
	return true
}

// CycleLayout advances to the next layout style and returns it
func (sm *StateManager) CycleLayout() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.interactionState.LayoutStyle = (sm.interactionState.LayoutStyle + 1) % 2
	return sm.interactionState.LayoutStyle
}
