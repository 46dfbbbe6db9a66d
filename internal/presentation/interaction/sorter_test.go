package interaction

import (
	"testing"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func sampleEntries() []Entry {
	return []Entry{
		{TrackIndex: 1, TrackID: "t2", Element: model.Element{ID: "c", StartTime: 1, Duration: 8}},
		{TrackIndex: 0, TrackID: "t1", Element: model.Element{ID: "a", StartTime: 4, Duration: 2}},
		{TrackIndex: 0, TrackID: "t1", Element: model.Element{ID: "b", StartTime: 0, Duration: 4}},
	}
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Element.ID)
	}
	return out
}

func TestElementSorter(t *testing.T) {
	tests := []struct {
		name  string
		field SortField
		order SortOrder
		want  []string
	}{
		{"start ascending", SortByStart, SortAscending, []string{"b", "c", "a"}},
		{"start descending", SortByStart, SortDescending, []string{"a", "c", "b"}},
		{"track then start", SortByTrack, SortAscending, []string{"b", "a", "c"}},
		{"length descending", SortByLength, SortDescending, []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewElementSorter()
			s.SetField(tt.field)
			s.SetOrder(tt.order)
			entries := sampleEntries()
			s.Sort(entries)
			assert.Equal(t, tt.want, ids(entries))
		})
	}
}

func TestEntries(t *testing.T) {
	st := model.NewEditorState()
	st.Tracks = []model.Track{
		{ID: "t1", Elements: []model.Element{{ID: "a"}, {ID: "b"}}},
		{ID: "t2", Elements: []model.Element{{ID: "c"}}},
	}

	entries := Entries(st)
	assert.Equal(t, []string{"a", "b", "c"}, ids(entries))
	assert.Equal(t, 1, entries[2].TrackIndex)
	assert.Equal(t, "t2", entries[2].TrackID)
}
