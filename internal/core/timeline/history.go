package timeline

import (
	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// snapshot is the part of the state that undo restores. Playback, zoom and
// the playhead are not part of it.
type snapshot struct {
	tracks    []model.Track
	selection []string
}

func takeSnapshot(st model.EditorState) snapshot {
	sel := make([]string, len(st.SelectedElementIDs))
	copy(sel, st.SelectedElementIDs)
	return snapshot{tracks: model.CloneTracks(st.Tracks), selection: sel}
}

func (sn snapshot) restore(st *model.EditorState) {
	st.Tracks = model.CloneTracks(sn.tracks)
	st.SelectedElementIDs = make([]string, len(sn.selection))
	copy(st.SelectedElementIDs, sn.selection)
}

// history is a bounded undo/redo stack
type history struct {
	limit int
	undo  []snapshot
	redo  []snapshot
}

func newHistory(limit int) history {
	return history{limit: limit}
}

// record pushes before, dropping the oldest entries past the limit. The
// limit is always positive once the config is validated.
func (h *history) record(before snapshot) {
	h.undo = append(h.undo, before)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

func (h *history) reset() {
	h.undo = nil
	h.redo = nil
}

// Undo reverts the last structural edit. Returns false when there is
// nothing to undo.
func (s *Store) Undo() bool {
	return s.update(func(st *model.EditorState) bool {
		n := len(s.hist.undo)
		if n == 0 {
			return false
		}
		prev := s.hist.undo[n-1]
		s.hist.undo = s.hist.undo[:n-1]
		s.hist.redo = append(s.hist.redo, takeSnapshot(*st))
		prev.restore(st)
		return true
	})
}

// Redo re-applies the last undone edit
func (s *Store) Redo() bool {
	return s.update(func(st *model.EditorState) bool {
		n := len(s.hist.redo)
		if n == 0 {
			return false
		}
		next := s.hist.redo[n-1]
		s.hist.redo = s.hist.redo[:n-1]
		s.hist.undo = append(s.hist.undo, takeSnapshot(*st))
		next.restore(st)
		return true
	})
}

// CanUndo reports whether Undo would change anything
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.hist.undo) > 0
}

// CanRedo reports whether Redo would change anything
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.hist.redo) > 0
}
