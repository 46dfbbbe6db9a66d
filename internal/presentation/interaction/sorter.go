package interaction

import (
	"sort"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// SortField represents the field to sort elements by
type SortField int

const (
	SortByStart SortField = iota
	SortByTrack
	SortByLength
)

// SortOrder represents the sort order
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// Entry is an element together with the track that holds it
type Entry struct {
	TrackIndex int
	TrackID    string
	Element    model.Element
}

// Entries flattens the tracks of st in track order
func Entries(st model.EditorState) []Entry {
	var out []Entry
	for ti, track := range st.Tracks {
		for _, el := range track.Elements {
			out = append(out, Entry{TrackIndex: ti, TrackID: track.ID, Element: el})
		}
	}
	return out
}

// ElementSorter orders elements for selection cycling and listings
type ElementSorter struct {
	field SortField
	order SortOrder
}

// NewElementSorter creates a sorter ordering by start time, earliest first
func NewElementSorter() *ElementSorter {
	return &ElementSorter{
		field: SortByStart,
		order: SortAscending,
	}
}

// SetField changes the sort field
func (s *ElementSorter) SetField(field SortField) {
	s.field = field
}

// SetOrder changes the sort order
func (s *ElementSorter) SetOrder(order SortOrder) {
	s.order = order
}

// Sort sorts entries in place. Ties keep track order, then start time.
func (s *ElementSorter) Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		var less, equal bool

		switch s.field {
		case SortByTrack:
			less, equal = a.TrackIndex < b.TrackIndex, a.TrackIndex == b.TrackIndex
		case SortByLength:
			la, lb := a.Element.EffectiveLength(), b.Element.EffectiveLength()
			less, equal = la < lb, la == lb
		default:
			less, equal = a.Element.StartTime < b.Element.StartTime, a.Element.StartTime == b.Element.StartTime
		}

		if equal {
			if a.TrackIndex != b.TrackIndex {
				return a.TrackIndex < b.TrackIndex
			}
			return a.Element.StartTime < b.Element.StartTime
		}
		if s.order == SortDescending {
			return !less
		}
		return less
	})
}
