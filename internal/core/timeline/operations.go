package timeline

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// InitializeWithVideo starts a fresh editing session: one video track holding
// one element that spans the whole source. History is cleared.
func (s *Store) InitializeWithVideo(url string, duration float64) {
	if duration <= 0 {
		duration = model.MinElementLength
	}
	s.update(func(st *model.EditorState) bool {
		fresh := model.NewEditorState()
		fresh.SourceURL = url
		fresh.SourceDuration = duration
		fresh.Tracks = []model.Track{{
			ID:   s.cfg.NewID(),
			Kind: model.TrackVideo,
			Name: trackName(model.TrackVideo, 1),
			Elements: []model.Element{{
				ID:       s.cfg.NewID(),
				Kind:     model.TrackVideo,
				Name:     sourceName(url),
				Duration: duration,
				Source:   url,
			}},
		}}
		*st = fresh
		s.hist.reset()
		return true
	})
	util.LogInfo("Initialized session", util.F("source", url), util.F("duration", duration))
}

// AddTrack appends an empty track and returns its id. The id is valid as
// soon as AddTrack returns, so callers may add elements right away.
func (s *Store) AddTrack(kind model.TrackKind) string {
	if !kind.Valid() {
		util.LogWarnf("Ignoring track of unknown kind %q", kind)
		return ""
	}
	id := s.cfg.NewID()
	s.edit(func(st *model.EditorState) bool {
		appendTrack(st, kind, id)
		return true
	})
	return id
}

// AddTrackWithElement appends a track holding one new element as a single
// undo step. Returns "" ids for an unknown kind.
func (s *Store) AddTrackWithElement(kind model.TrackKind, fields model.ElementPatch) (trackID, elementID string) {
	if !kind.Valid() {
		util.LogWarnf("Ignoring track of unknown kind %q", kind)
		return "", ""
	}
	trackID = s.cfg.NewID()
	s.edit(func(st *model.EditorState) bool {
		track := appendTrack(st, kind, trackID)
		elementID = s.appendElement(track, fields)
		return true
	})
	return trackID, elementID
}

// RemoveTrack deletes a track with all of its elements
func (s *Store) RemoveTrack(trackID string) bool {
	return s.edit(func(st *model.EditorState) bool {
		i := trackIndex(st, trackID)
		if i < 0 {
			return false
		}
		st.Tracks = append(st.Tracks[:i], st.Tracks[i+1:]...)
		return true
	})
}

// AddElement creates an element on trackID from the given fields merged over
// defaults and returns the new id, or "" when the track does not exist.
func (s *Store) AddElement(trackID string, fields model.ElementPatch) string {
	var id string
	s.edit(func(st *model.EditorState) bool {
		i := trackIndex(st, trackID)
		if i < 0 {
			return false
		}
		id = s.appendElement(&st.Tracks[i], fields)
		return true
	})
	if id == "" {
		util.LogDebugf("AddElement: track %s not found", trackID)
	}
	return id
}

func appendTrack(st *model.EditorState, kind model.TrackKind, id string) *model.Track {
	n := 1
	for _, t := range st.Tracks {
		if t.Kind == kind {
			n++
		}
	}
	st.Tracks = append(st.Tracks, model.Track{
		ID:       id,
		Kind:     kind,
		Name:     trackName(kind, n),
		Elements: make([]model.Element, 0),
	})
	return &st.Tracks[len(st.Tracks)-1]
}

func (s *Store) appendElement(track *model.Track, fields model.ElementPatch) string {
	base := defaultElement(track.Kind)
	el := base
	el.Apply(fields)
	sanitize(&el, base, fields)
	el.ID = s.cfg.NewID()
	el.Kind = track.Kind
	if el.Name == "" {
		el.Name = defaultElementName(el)
	}
	track.Elements = append(track.Elements, el)
	return el.ID
}

// UpdateElement shallow-merges patch into the element. Trims are clamped so
// the element keeps a positive effective length; overlap is not checked.
func (s *Store) UpdateElement(trackID, elementID string, patch model.ElementPatch) bool {
	return s.edit(func(st *model.EditorState) bool {
		ti := trackIndex(st, trackID)
		if ti < 0 {
			return false
		}
		ei := elementIndex(&st.Tracks[ti], elementID)
		if ei < 0 {
			return false
		}
		el := &st.Tracks[ti].Elements[ei]
		prev := *el
		el.Apply(patch)
		sanitize(el, prev, patch)
		return *el != prev
	})
}

// RemoveElement deletes one element
func (s *Store) RemoveElement(trackID, elementID string) bool {
	return s.edit(func(st *model.EditorState) bool {
		ti := trackIndex(st, trackID)
		if ti < 0 {
			return false
		}
		return removeAt(&st.Tracks[ti], elementID)
	})
}

// RemoveSelected deletes every selected element as one undoable edit
func (s *Store) RemoveSelected() int {
	removed := 0
	s.edit(func(st *model.EditorState) bool {
		for ti := range st.Tracks {
			for _, id := range st.SelectedElementIDs {
				if removeAt(&st.Tracks[ti], id) {
					removed++
				}
			}
		}
		return removed > 0
	})
	return removed
}

func removeAt(t *model.Track, elementID string) bool {
	i := elementIndex(t, elementID)
	if i < 0 {
		return false
	}
	t.Elements = append(t.Elements[:i], t.Elements[i+1:]...)
	return true
}

// SelectElement replaces the selection with id, or toggles id in the
// selection when additive is set. Unknown ids are ignored.
func (s *Store) SelectElement(elementID string, additive bool) bool {
	return s.update(func(st *model.EditorState) bool {
		if _, _, ok := st.FindElement(elementID); !ok {
			return false
		}
		if !additive {
			if len(st.SelectedElementIDs) == 1 && st.SelectedElementIDs[0] == elementID {
				return false
			}
			st.SelectedElementIDs = []string{elementID}
			return true
		}
		for i, id := range st.SelectedElementIDs {
			if id == elementID {
				st.SelectedElementIDs = append(st.SelectedElementIDs[:i], st.SelectedElementIDs[i+1:]...)
				return true
			}
		}
		st.SelectedElementIDs = append(st.SelectedElementIDs, elementID)
		return true
	})
}

// ClearSelection empties the selection
func (s *Store) ClearSelection() bool {
	return s.update(func(st *model.EditorState) bool {
		if len(st.SelectedElementIDs) == 0 {
			return false
		}
		st.SelectedElementIDs = make([]string, 0)
		return true
	})
}

func defaultElement(kind model.TrackKind) model.Element {
	el := model.Element{
		Kind:     kind,
		Duration: model.DefaultElementDuration,
	}
	if kind == model.TrackText {
		el.Content = model.DefaultTextContent
		el.FontSize = model.DefaultTextFontSize
		el.Color = model.DefaultTextColor
		el.X = model.DefaultTextX
		el.Y = model.DefaultTextY
	}
	return el
}

// sanitize clamps el after patch was merged over prev. Non-finite values
// fall back to prev. The minimum length is only enforced when the patch
// touches the length; otherwise the trims are left as they are. When both
// trims together would collapse the element, the trim named in the patch
// gives way first.
func sanitize(el *model.Element, prev model.Element, patch model.ElementPatch) {
	for _, f := range []struct{ v, prev *float64 }{
		{&el.StartTime, &prev.StartTime},
		{&el.Duration, &prev.Duration},
		{&el.TrimStart, &prev.TrimStart},
		{&el.TrimEnd, &prev.TrimEnd},
		{&el.X, &prev.X},
		{&el.Y, &prev.Y},
	} {
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			*f.v = *f.prev
		}
	}

	if el.Duration <= 0 {
		el.Duration = prev.Duration
	}
	if el.StartTime < 0 {
		el.StartTime = 0
	}
	if el.FontSize <= 0 && prev.FontSize > 0 {
		el.FontSize = prev.FontSize
	}
	el.X = clamp(el.X, 0, 100)
	el.Y = clamp(el.Y, 0, 100)
	el.TrimStart = clamp(el.TrimStart, 0, el.Duration)
	el.TrimEnd = clamp(el.TrimEnd, 0, el.Duration)

	if patch.TrimStart == nil && patch.TrimEnd == nil && patch.Duration == nil {
		return
	}

	minLen := model.MinElementLength
	if el.Duration < minLen {
		minLen = el.Duration
	}
	excess := minLen - el.EffectiveLength()
	if excess <= 0 {
		return
	}

	first, second := &el.TrimEnd, &el.TrimStart
	if patch.TrimStart != nil && patch.TrimEnd == nil {
		first, second = &el.TrimStart, &el.TrimEnd
	}
	for _, trim := range []*float64{first, second} {
		d := excess
		if *trim < d {
			d = *trim
		}
		*trim -= d
		excess -= d
	}
}

func trackName(kind model.TrackKind, n int) string {
	return fmt.Sprintf("%s %d", strings.ToUpper(string(kind[:1]))+string(kind[1:]), n)
}

func sourceName(url string) string {
	if url == "" {
		return "Clip"
	}
	name := path.Base(strings.SplitN(url, "?", 2)[0])
	if name == "." || name == "/" {
		return "Clip"
	}
	return name
}

func defaultElementName(el model.Element) string {
	switch el.Kind {
	case model.TrackText:
		return el.Content
	case model.TrackAudio:
		if el.Source != "" {
			return sourceName(el.Source)
		}
		return "Audio"
	default:
		return sourceName(el.Source)
	}
}
