package timeline

import (
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// SplitElement cuts an element in two at atTime. The first piece keeps the
// original id and start, and ends exactly at atTime; the second starts at
// atTime and resumes the source where the first stopped, so together they
// cover the original source interval with nothing lost or duplicated.
//
// atTime must lie strictly inside the effective interval; otherwise nothing
// happens and ok is false.
func (s *Store) SplitElement(trackID, elementID string, atTime float64) (newID string, ok bool) {
	s.edit(func(st *model.EditorState) bool {
		ti := trackIndex(st, trackID)
		if ti < 0 {
			return false
		}
		track := &st.Tracks[ti]
		ei := elementIndex(track, elementID)
		if ei < 0 {
			return false
		}
		newID, ok = splitAt(track, ei, atTime, s.cfg.NewID)
		return ok
	})
	if !ok {
		util.LogDebug("Split point outside element, nothing to split",
			util.F("element", elementID), util.F("at", atTime))
	}
	return newID, ok
}

// SplitAtPlayhead splits the selected elements under the playhead, or every
// element under the playhead when nothing is selected. All cuts form a
// single undo step. Returns the number of elements split.
func (s *Store) SplitAtPlayhead() int {
	count := 0
	s.edit(func(st *model.EditorState) bool {
		at := st.CurrentTime
		onlySelected := len(st.SelectedElementIDs) > 0
		for ti := range st.Tracks {
			track := &st.Tracks[ti]
			// Walk backwards so inserted pieces are never revisited.
			for ei := len(track.Elements) - 1; ei >= 0; ei-- {
				if onlySelected && !st.IsSelected(track.Elements[ei].ID) {
					continue
				}
				if _, ok := splitAt(track, ei, at, s.cfg.NewID); ok {
					count++
				}
			}
		}
		return count > 0
	})
	return count
}

func splitAt(track *model.Track, ei int, at float64, nextID func() string) (string, bool) {
	orig := track.Elements[ei]
	if !orig.Contains(at) {
		return "", false
	}

	first := orig
	first.TrimEnd = orig.TrimEnd + (orig.EndTime() - at)

	second := orig
	second.ID = nextID()
	second.StartTime = at
	second.TrimStart = orig.TrimStart + (at - orig.StartTime)

	elements := make([]model.Element, 0, len(track.Elements)+1)
	elements = append(elements, track.Elements[:ei]...)
	elements = append(elements, first, second)
	elements = append(elements, track.Elements[ei+1:]...)
	track.Elements = elements

	return second.ID, true
}

// TrimHeadTo returns the patch that moves el's in-point to time at while
// keeping the rest of the element where it is on the timeline.
func TrimHeadTo(el model.Element, at float64) (model.ElementPatch, bool) {
	if !el.Contains(at) {
		return model.ElementPatch{}, false
	}
	return model.ElementPatch{
		StartTime: model.Float(at),
		TrimStart: model.Float(el.TrimStart + (at - el.StartTime)),
	}, true
}

// TrimTailTo returns the patch that moves el's out-point to time at
func TrimTailTo(el model.Element, at float64) (model.ElementPatch, bool) {
	if !el.Contains(at) {
		return model.ElementPatch{}, false
	}
	return model.ElementPatch{
		TrimEnd: model.Float(el.TrimEnd + (el.EndTime() - at)),
	}, true
}
