package timeline

import (
	"math"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// Seek moves the playhead, clamped to [0, TotalDuration]
func (s *Store) Seek(t float64) bool {
	return s.update(func(st *model.EditorState) bool {
		next := clamp(t, 0, st.TotalDuration())
		if next == st.CurrentTime {
			return false
		}
		st.CurrentTime = next
		return true
	})
}

// SeekBy moves the playhead by delta seconds
func (s *Store) SeekBy(delta float64) bool {
	return s.update(func(st *model.EditorState) bool {
		next := clamp(st.CurrentTime+delta, 0, st.TotalDuration())
		if next == st.CurrentTime {
			return false
		}
		st.CurrentTime = next
		return true
	})
}

// SyncTime applies a position reported by the media clock. It is the only
// way time advances during playback. Reaching the end pauses playback.
func (s *Store) SyncTime(t float64) bool {
	return s.update(func(st *model.EditorState) bool {
		total := st.TotalDuration()
		next := clamp(t, 0, total)
		changed := next != st.CurrentTime
		st.CurrentTime = next
		if st.IsPlaying && t >= total {
			st.IsPlaying = false
			changed = true
		}
		return changed
	})
}

// Play sets the playing flag. Time itself is advanced by the media clock.
func (s *Store) Play() bool {
	return s.setPlaying(true)
}

// Pause clears the playing flag
func (s *Store) Pause() bool {
	return s.setPlaying(false)
}

// Toggle flips between playing and paused
func (s *Store) Toggle() bool {
	return s.update(func(st *model.EditorState) bool {
		st.IsPlaying = !st.IsPlaying
		return true
	})
}

func (s *Store) setPlaying(playing bool) bool {
	return s.update(func(st *model.EditorState) bool {
		if st.IsPlaying == playing {
			return false
		}
		st.IsPlaying = playing
		return true
	})
}

// SetVolume sets the volume, clamped to [0, 1]
func (s *Store) SetVolume(v float64) bool {
	return s.update(func(st *model.EditorState) bool {
		next := clamp(v, 0, 1)
		if next == st.Volume {
			return false
		}
		st.Volume = next
		return true
	})
}

// ToggleMute flips the mute flag
func (s *Store) ToggleMute() bool {
	return s.update(func(st *model.EditorState) bool {
		st.Muted = !st.Muted
		return true
	})
}

// SetSpeed sets the playback rate. Non-positive rates are ignored.
func (s *Store) SetSpeed(rate float64) bool {
	if rate <= 0 {
		return false
	}
	return s.update(func(st *model.EditorState) bool {
		next := clamp(rate, model.SpeedMin, model.SpeedMax)
		if next == st.Speed {
			return false
		}
		st.Speed = next
		return true
	})
}

// ZoomIn moves the zoom level up to the next power of the configured step.
// Levels stay on that ladder, so a value clamped at a bound returns to it.
func (s *Store) ZoomIn() bool {
	return s.setZoom(func(k float64) float64 { return math.Floor(k+zoomEpsilon) + 1 })
}

// ZoomOut moves the zoom level down to the previous power of the step
func (s *Store) ZoomOut() bool {
	return s.setZoom(func(k float64) float64 { return math.Ceil(k-zoomEpsilon) - 1 })
}

// zoomEpsilon absorbs rounding in log(step^k)/log(step)
const zoomEpsilon = 1e-9

func (s *Store) setZoom(nextExp func(float64) float64) bool {
	return s.update(func(st *model.EditorState) bool {
		k := math.Log(st.ZoomLevel) / math.Log(s.cfg.ZoomStep)
		z := clamp(math.Pow(s.cfg.ZoomStep, nextExp(k)), s.cfg.ZoomMin, s.cfg.ZoomMax)
		if z == st.ZoomLevel {
			return false
		}
		st.ZoomLevel = z
		return true
	})
}

// ToggleSnapping flips snapping for drag and nudge handlers
func (s *Store) ToggleSnapping() bool {
	return s.update(func(st *model.EditorState) bool {
		st.SnappingEnabled = !st.SnappingEnabled
		return true
	})
}
