package geometry

import (
	"math"
	"sort"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// Snapper pulls candidate times onto nearby edges. The threshold is in
// pixels so snapping feels the same at every zoom level.
type Snapper struct {
	Mapper      Mapper
	ThresholdPx float64
}

// Snap returns the edge closest to t when it lies within the threshold,
// otherwise t unchanged. ok reports whether a snap happened.
func (s Snapper) Snap(t float64, edges []float64) (float64, bool) {
	best, bestDist := t, math.Inf(1)
	for _, e := range edges {
		d := math.Abs(s.Mapper.TimeToPixels(e) - s.Mapper.TimeToPixels(t))
		if d <= s.ThresholdPx && d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// SnapSpan snaps an interval of fixed length starting at start, trying both
// its head and its tail, and returns the adjusted start.
func (s Snapper) SnapSpan(start, length float64, edges []float64) (float64, bool) {
	headTo, headOK := s.Snap(start, edges)
	tailTo, tailOK := s.Snap(start+length, edges)
	switch {
	case headOK && tailOK:
		if math.Abs(headTo-start) <= math.Abs(tailTo-(start+length)) {
			return headTo, true
		}
		return tailTo - length, true
	case headOK:
		return headTo, true
	case tailOK:
		return tailTo - length, true
	}
	return start, false
}

// Edges collects snap targets from state: zero, the playhead and the start
// and end of every element not listed in exclude. The result is sorted and
// free of duplicates.
func Edges(st model.EditorState, exclude ...string) []float64 {
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	edges := []float64{0, st.CurrentTime}
	for _, track := range st.Tracks {
		for _, el := range track.Elements {
			if _, ok := skip[el.ID]; ok {
				continue
			}
			edges = append(edges, el.StartTime, el.EndTime())
		}
	}

	sort.Float64s(edges)
	out := edges[:0]
	for i, e := range edges {
		if i == 0 || e != out[len(out)-1] {
			out = append(out, e)
		}
	}
	return out
}
