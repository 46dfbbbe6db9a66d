package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/core/timeline"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

var (
	// ErrUnknownOp is returned for an op name the runner does not know
	ErrUnknownOp = errors.New("unknown op")
	// ErrUnresolvedRef is returned when a track or element ref names nothing
	ErrUnresolvedRef = errors.New("unresolved reference")
	// ErrMissingArgument is returned when an op lacks a required field
	ErrMissingArgument = errors.New("missing argument")
)

// Refs bound by initialize for the seeded video track and clip
const (
	RefVideoTrack = "video"
	RefVideoClip  = "clip"
)

// Result summarises one Apply call
type Result struct {
	Applied int
	Changed int
}

// Runner applies parsed operations to a store. Refs persist across Apply
// calls on the same runner.
type Runner struct {
	refs map[string]string
}

func NewRunner() *Runner {
	return &Runner{refs: make(map[string]string)}
}

// Refs returns a copy of the bound names
func (r *Runner) Refs() map[string]string {
	out := make(map[string]string, len(r.refs))
	for k, v := range r.refs {
		out[k] = v
	}
	return out
}

// Apply runs ops in order and stops at the first script error. Operations
// that leave the state unchanged, such as a split outside its element, are
// not errors.
func (r *Runner) Apply(ctx context.Context, s *timeline.Store, ops []Op) (Result, error) {
	var res Result
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		util.LogDebug("Applying script op", util.F("line", op.Line), util.F("op", Describe(op)))
		changed, err := r.apply(s, op)
		if err != nil {
			return res, &LineError{Line: op.Line, Err: err}
		}
		res.Applied++
		if changed {
			res.Changed++
		}
	}
	util.LogDebugf("Applied %d operations, %d changed the timeline", res.Applied, res.Changed)
	return res, nil
}

func (r *Runner) apply(s *timeline.Store, op Op) (bool, error) {
	switch op.Op {
	case "initialize":
		return r.initialize(s, op)
	case "addTrack":
		id := s.AddTrack(op.Kind)
		if id == "" {
			return false, fmt.Errorf("%w: track kind %q", ErrMissingArgument, op.Kind)
		}
		r.bind(op.Ref, id)
		return true, nil
	case "removeTrack":
		trackID, err := r.resolveTrack(s, op.Track)
		if err != nil {
			return false, err
		}
		return s.RemoveTrack(trackID), nil
	case "addElement":
		trackID, err := r.resolveTrack(s, op.Track)
		if err != nil {
			return false, err
		}
		id := s.AddElement(trackID, op.Fields)
		r.bind(op.Ref, id)
		return id != "", nil
	case "updateElement":
		trackID, elementID, err := r.resolveElement(s, op.Element)
		if err != nil {
			return false, err
		}
		return s.UpdateElement(trackID, elementID, op.Fields), nil
	case "removeElement":
		trackID, elementID, err := r.resolveElement(s, op.Element)
		if err != nil {
			return false, err
		}
		return s.RemoveElement(trackID, elementID), nil
	case "removeSelected":
		return s.RemoveSelected() > 0, nil
	case "select":
		_, elementID, err := r.resolveElement(s, op.Element)
		if err != nil {
			return false, err
		}
		return s.SelectElement(elementID, op.Additive), nil
	case "clearSelection":
		return s.ClearSelection(), nil
	case "split":
		return r.split(s, op)
	case "splitAtPlayhead":
		return s.SplitAtPlayhead() > 0, nil
	case "trimHead", "trimTail":
		return r.trim(s, op)
	case "seek":
		return withValue(op.Time, "time", s.Seek)
	case "seekBy":
		return withValue(op.Delta, "delta", s.SeekBy)
	case "play":
		return s.Play(), nil
	case "pause":
		return s.Pause(), nil
	case "toggle":
		return s.Toggle(), nil
	case "setVolume":
		return withValue(op.Value, "value", s.SetVolume)
	case "toggleMute":
		return s.ToggleMute(), nil
	case "setSpeed":
		return withValue(op.Value, "value", s.SetSpeed)
	case "zoomIn":
		return s.ZoomIn(), nil
	case "zoomOut":
		return s.ZoomOut(), nil
	case "toggleSnapping":
		return s.ToggleSnapping(), nil
	case "undo":
		return s.Undo(), nil
	case "redo":
		return s.Redo(), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}
}

func (r *Runner) initialize(s *timeline.Store, op Op) (bool, error) {
	if op.Duration == nil {
		return false, fmt.Errorf("%w: duration", ErrMissingArgument)
	}
	s.InitializeWithVideo(op.URL, *op.Duration)
	r.refs = make(map[string]string)
	r.Seed(s.State())
	return true, nil
}

// Seed binds the video and clip refs to the first track and its first
// element, as left by InitializeWithVideo
func (r *Runner) Seed(st model.EditorState) {
	if len(st.Tracks) == 0 {
		return
	}
	track := st.Tracks[0]
	r.bind(RefVideoTrack, track.ID)
	if len(track.Elements) > 0 {
		r.bind(RefVideoClip, track.Elements[0].ID)
	}
}

func (r *Runner) split(s *timeline.Store, op Op) (bool, error) {
	if op.Time == nil {
		return false, fmt.Errorf("%w: time", ErrMissingArgument)
	}
	trackID, elementID, err := r.resolveElement(s, op.Element)
	if err != nil {
		return false, err
	}
	newID, ok := s.SplitElement(trackID, elementID, *op.Time)
	if ok {
		r.bind(op.Ref, newID)
	}
	return ok, nil
}

func (r *Runner) trim(s *timeline.Store, op Op) (bool, error) {
	if op.Time == nil {
		return false, fmt.Errorf("%w: time", ErrMissingArgument)
	}
	trackID, elementID, err := r.resolveElement(s, op.Element)
	if err != nil {
		return false, err
	}
	_, el, _ := s.State().FindElement(elementID)

	trimTo := timeline.TrimTailTo
	if op.Op == "trimHead" {
		trimTo = timeline.TrimHeadTo
	}
	patch, ok := trimTo(el, *op.Time)
	if !ok {
		return false, nil
	}
	return s.UpdateElement(trackID, elementID, patch), nil
}

func withValue(v *float64, name string, fn func(float64) bool) (bool, error) {
	if v == nil {
		return false, fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return fn(*v), nil
}

func (r *Runner) bind(ref, id string) {
	if ref != "" && id != "" {
		r.refs[ref] = id
	}
}

func (r *Runner) lookup(ref string) string {
	if id, ok := r.refs[ref]; ok {
		return id
	}
	return ref
}

func (r *Runner) resolveTrack(s *timeline.Store, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: track", ErrMissingArgument)
	}
	id := r.lookup(ref)
	if _, ok := s.State().FindTrack(id); !ok {
		return "", fmt.Errorf("%w: track %q", ErrUnresolvedRef, ref)
	}
	return id, nil
}

func (r *Runner) resolveElement(s *timeline.Store, ref string) (trackID, elementID string, err error) {
	if ref == "" {
		return "", "", fmt.Errorf("%w: element", ErrMissingArgument)
	}
	id := r.lookup(ref)
	trackID, _, ok := s.State().FindElement(id)
	if !ok {
		return "", "", fmt.Errorf("%w: element %q", ErrUnresolvedRef, ref)
	}
	return trackID, id, nil
}

// Describe renders an op for log lines
func Describe(op Op) string {
	target := op.Element
	if target == "" {
		target = op.Track
	}
	if target == "" {
		return fmt.Sprintf("%d:%s", op.Line, op.Op)
	}
	return fmt.Sprintf("%d:%s(%s)", op.Line, op.Op, target)
}
