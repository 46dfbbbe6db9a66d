package model

import "math"

// TrackKind identifies what a track lane carries
type TrackKind string

// Valid reports whether k is a known track kind
func (k TrackKind) Valid() bool {
	switch k {
	case TrackVideo, TrackAudio, TrackText:
		return true
	}
	return false
}

// Element is a single placed clip, caption or audio unit on a track.
// Times are seconds. X and Y are canvas percentages (0-100) so the data
// stays independent of the preview resolution.
type Element struct {
	ID        string    `json:"id"`
	Kind      TrackKind `json:"kind"`
	Name      string    `json:"name,omitempty"`
	StartTime float64   `json:"startTime"`
	Duration  float64   `json:"duration"`
	TrimStart float64   `json:"trimStart"`
	TrimEnd   float64   `json:"trimEnd"`

	// Video and audio
	Source string `json:"source,omitempty"`

	// Text
	Content  string  `json:"content,omitempty"`
	FontSize int     `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
}

// EffectiveLength is the on-timeline length after trims
func (e Element) EffectiveLength() float64 {
	return e.Duration - e.TrimStart - e.TrimEnd
}

// EndTime is the exclusive end of the effective interval
func (e Element) EndTime() float64 {
	return e.StartTime + e.EffectiveLength()
}

// Covers reports whether t falls in [StartTime, EndTime)
func (e Element) Covers(t float64) bool {
	return t >= e.StartTime && t < e.EndTime()
}

// Contains reports whether t lies strictly inside the effective interval,
// which is where a split is allowed.
func (e Element) Contains(t float64) bool {
	return t > e.StartTime && t < e.EndTime()
}

// SourceIn is the source offset shown at StartTime
func (e Element) SourceIn() float64 {
	return e.TrimStart
}

// SourceOut is the exclusive source offset shown at EndTime
func (e Element) SourceOut() float64 {
	return e.Duration - e.TrimEnd
}

// Apply shallow-merges the non-nil fields of p into e. No clamping.
func (e *Element) Apply(p ElementPatch) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.Duration != nil {
		e.Duration = *p.Duration
	}
	if p.TrimStart != nil {
		e.TrimStart = *p.TrimStart
	}
	if p.TrimEnd != nil {
		e.TrimEnd = *p.TrimEnd
	}
	if p.Source != nil {
		e.Source = *p.Source
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.FontSize != nil {
		e.FontSize = *p.FontSize
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.X != nil {
		e.X = *p.X
	}
	if p.Y != nil {
		e.Y = *p.Y
	}
}

// ElementPatch lists element fields to change; nil means unchanged.
type ElementPatch struct {
	Name      *string  `json:"name,omitempty"`
	StartTime *float64 `json:"startTime,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`
	TrimStart *float64 `json:"trimStart,omitempty"`
	TrimEnd   *float64 `json:"trimEnd,omitempty"`
	Source    *string  `json:"source,omitempty"`
	Content   *string  `json:"content,omitempty"`
	FontSize  *int     `json:"fontSize,omitempty"`
	Color     *string  `json:"color,omitempty"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
}

// Float returns a pointer to v, for building patches
func Float(v float64) *float64 { return &v }

// String returns a pointer to v, for building patches
func String(v string) *string { return &v }

// Int returns a pointer to v, for building patches
func Int(v int) *int { return &v }

// Track is an ordered lane of one kind. Elements may overlap.
type Track struct {
	ID       string    `json:"id"`
	Kind     TrackKind `json:"kind"`
	Name     string    `json:"name,omitempty"`
	Elements []Element `json:"elements"`
}

// Clone returns a deep copy of the track
func (t Track) Clone() Track {
	c := t
	c.Elements = make([]Element, len(t.Elements))
	copy(c.Elements, t.Elements)
	return c
}

// TopmostVideoAt returns the element a preview would show at time t.
// Later elements in the lane are drawn over earlier ones.
func (t Track) TopmostVideoAt(at float64) (Element, bool) {
	for i := len(t.Elements) - 1; i >= 0; i-- {
		if t.Elements[i].Covers(at) {
			return t.Elements[i], true
		}
	}
	return Element{}, false
}

// EditorState is the complete timeline editing state
type EditorState struct {
	Tracks             []Track  `json:"tracks"`
	CurrentTime        float64  `json:"currentTime"`
	SelectedElementIDs []string `json:"selectedElementIds"`
	IsPlaying          bool     `json:"isPlaying"`
	Volume             float64  `json:"volume"`
	Muted              bool     `json:"muted"`
	Speed              float64  `json:"speed"`
	ZoomLevel          float64  `json:"zoomLevel"`
	SnappingEnabled    bool     `json:"snappingEnabled"`
	SourceURL          string   `json:"sourceUrl,omitempty"`
	SourceDuration     float64  `json:"sourceDuration,omitempty"`
}

// NewEditorState returns an empty state with playback defaults
func NewEditorState() EditorState {
	return EditorState{
		Tracks:             make([]Track, 0),
		SelectedElementIDs: make([]string, 0),
		Volume:             DefaultVolume,
		Speed:              DefaultSpeed,
		ZoomLevel:          DefaultZoom,
		SnappingEnabled:    true,
	}
}

// Clone returns a deep copy safe to hand to readers
func (s EditorState) Clone() EditorState {
	c := s
	c.Tracks = CloneTracks(s.Tracks)
	c.SelectedElementIDs = make([]string, len(s.SelectedElementIDs))
	copy(c.SelectedElementIDs, s.SelectedElementIDs)
	return c
}

// CloneTracks deep-copies a track list
func CloneTracks(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		out[i] = t.Clone()
	}
	return out
}

// TotalDuration is the latest effective end across all elements, 0 when empty
func (s EditorState) TotalDuration() float64 {
	total := 0.0
	for _, t := range s.Tracks {
		for _, e := range t.Elements {
			total = math.Max(total, e.EndTime())
		}
	}
	return total
}

// IsSelected reports whether id is in the selection
func (s EditorState) IsSelected(id string) bool {
	for _, sel := range s.SelectedElementIDs {
		if sel == id {
			return true
		}
	}
	return false
}

// FindElement locates an element by id across all tracks
func (s EditorState) FindElement(id string) (trackID string, el Element, ok bool) {
	for _, t := range s.Tracks {
		for _, e := range t.Elements {
			if e.ID == id {
				return t.ID, e, true
			}
		}
	}
	return "", Element{}, false
}

// FindTrack locates a track by id
func (s EditorState) FindTrack(id string) (Track, bool) {
	for _, t := range s.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// ElementRef addresses an element together with its owning track
type ElementRef struct {
	TrackID   string
	ElementID string
}

// ElementsAt returns every element whose effective interval covers t, in
// display order (top track first).
func (s EditorState) ElementsAt(t float64) []ElementRef {
	var refs []ElementRef
	for _, tr := range s.Tracks {
		for _, e := range tr.Elements {
			if e.Covers(t) {
				refs = append(refs, ElementRef{TrackID: tr.ID, ElementID: e.ID})
			}
		}
	}
	return refs
}

// PreviewAt returns the video element a preview shows at t: the topmost
// element of the first video track that has one there.
func (s EditorState) PreviewAt(t float64) (Element, bool) {
	for _, tr := range s.Tracks {
		if tr.Kind != TrackVideo {
			continue
		}
		if el, ok := tr.TopmostVideoAt(t); ok {
			return el, true
		}
	}
	return Element{}, false
}
