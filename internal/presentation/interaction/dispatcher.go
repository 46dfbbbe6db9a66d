package interaction

import (
	"fmt"

	"github.com/penwyp/go-timeline-editor/internal/core/geometry"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/core/timeline"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// speedPresets are the rates [ and ] step through
var speedPresets = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 2, 3, 4}

// DispatchConfig carries key step sizes and the screen geometry needed to
// interpret pointer clicks
type DispatchConfig struct {
	SeekStep      float64
	SeekStepLarge float64
	NudgeStep     float64
	VolumeStep    float64

	SnapThresholdPx     float64
	BasePixelsPerSecond float64
	HeaderColumns       int
	PixelsPerColumn     float64

	// ContentTop is the first 1-based screen row that accepts seek clicks
	// and Width is the screen width in columns; 0 disables scrolling.
	ContentTop int
	Width      int
}

func (c *DispatchConfig) applyDefaults() {
	if c.SeekStep <= 0 {
		c.SeekStep = 1
	}
	if c.SeekStepLarge <= 0 {
		c.SeekStepLarge = 5
	}
	if c.NudgeStep <= 0 {
		c.NudgeStep = 0.1
	}
	if c.VolumeStep <= 0 {
		c.VolumeStep = 0.1
	}
	if c.BasePixelsPerSecond <= 0 {
		c.BasePixelsPerSecond = 50
	}
	if c.PixelsPerColumn <= 0 {
		c.PixelsPerColumn = 10
	}
}

// Result tells the front-end what happened
type Result struct {
	Changed      bool
	Quit         bool
	ToggleHelp   bool
	ToggleLayout bool
	Message      string
}

// Dispatcher turns actions into store operations. It is the only place the
// terminal front-end mutates editor state.
type Dispatcher struct {
	store  *timeline.Store
	cfg    DispatchConfig
	sorter *ElementSorter
}

// NewDispatcher creates a dispatcher for store
func NewDispatcher(store *timeline.Store, cfg DispatchConfig) *Dispatcher {
	cfg.applyDefaults()
	return &Dispatcher{store: store, cfg: cfg, sorter: NewElementSorter()}
}

// SetViewport records the screen geometry the last frame was drawn with
func (d *Dispatcher) SetViewport(width, contentTop int) {
	d.cfg.Width = width
	d.cfg.ContentTop = contentTop
}

// layoutFor returns the screen layout at the state's zoom, scrolled the way
// the renderer scrolls it
func (d *Dispatcher) layoutFor(st model.EditorState) geometry.Layout {
	l := geometry.Layout{
		Mapper:          geometry.NewMapper(d.cfg.BasePixelsPerSecond, st.ZoomLevel),
		HeaderColumns:   d.cfg.HeaderColumns,
		PixelsPerColumn: d.cfg.PixelsPerColumn,
	}
	if d.cfg.Width > 0 {
		l.Offset = l.ViewOffset(st.CurrentTime, d.cfg.Width-d.cfg.HeaderColumns)
	}
	return l
}

// Dispatch applies a single action
func (d *Dispatcher) Dispatch(a Action) Result {
	s := d.store
	switch a.Kind {
	case ActionQuit:
		return Result{Quit: true}
	case ActionToggleHelp:
		return Result{ToggleHelp: true}
	case ActionToggleLayout:
		return Result{ToggleLayout: true}
	case ActionTogglePlay:
		return d.togglePlay()
	case ActionSeekBack:
		return changed(s.SeekBy(-d.cfg.SeekStep))
	case ActionSeekForward:
		return changed(s.SeekBy(d.cfg.SeekStep))
	case ActionSeekBackLarge:
		return changed(s.SeekBy(-d.cfg.SeekStepLarge))
	case ActionSeekForwardLarge:
		return changed(s.SeekBy(d.cfg.SeekStepLarge))
	case ActionSeekStart:
		return changed(s.Seek(0))
	case ActionSeekEnd:
		return changed(s.Seek(s.TotalDuration()))
	case ActionSeekClick:
		return d.seekClick(a)
	case ActionRemoveSelected:
		n := s.RemoveSelected()
		return counted(n, "Removed %d element(s)", "Nothing selected")
	case ActionClearSelection:
		return changed(s.ClearSelection())
	case ActionSplit:
		n := s.SplitAtPlayhead()
		return counted(n, "Split %d element(s)", "Nothing to split at playhead")
	case ActionZoomIn:
		return changed(s.ZoomIn())
	case ActionZoomOut:
		return changed(s.ZoomOut())
	case ActionToggleSnapping:
		s.ToggleSnapping()
		return Result{Changed: true, Message: onOff("Snapping", s.State().SnappingEnabled)}
	case ActionSelectNext:
		return d.cycleSelection(1)
	case ActionSelectPrev:
		return d.cycleSelection(-1)
	case ActionToggleSelectAtPlayhead:
		return d.toggleAtPlayhead()
	case ActionTrimHead:
		return d.trim(timeline.TrimHeadTo, "Trimmed in-point of %d element(s)")
	case ActionTrimTail:
		return d.trim(timeline.TrimTailTo, "Trimmed out-point of %d element(s)")
	case ActionNudgeBack:
		return d.nudge(-d.cfg.NudgeStep)
	case ActionNudgeForward:
		return d.nudge(d.cfg.NudgeStep)
	case ActionAddText:
		return d.addText()
	case ActionToggleMute:
		s.ToggleMute()
		return Result{Changed: true, Message: onOff("Mute", s.State().Muted)}
	case ActionVolumeDown:
		return changed(s.SetVolume(s.State().Volume - d.cfg.VolumeStep))
	case ActionVolumeUp:
		return changed(s.SetVolume(s.State().Volume + d.cfg.VolumeStep))
	case ActionSpeedDown:
		return d.stepSpeed(-1)
	case ActionSpeedUp:
		return d.stepSpeed(1)
	case ActionUndo:
		if s.Undo() {
			return Result{Changed: true, Message: "Undo"}
		}
		return Result{Message: "Nothing to undo"}
	case ActionRedo:
		if s.Redo() {
			return Result{Changed: true, Message: "Redo"}
		}
		return Result{Message: "Nothing to redo"}
	}
	return Result{}
}

func changed(ok bool) Result {
	return Result{Changed: ok}
}

func counted(n int, format, none string) Result {
	if n == 0 {
		return Result{Message: none}
	}
	return Result{Changed: true, Message: fmt.Sprintf(format, n)}
}

func onOff(what string, on bool) string {
	if on {
		return what + " on"
	}
	return what + " off"
}

// togglePlay restarts from zero when play is pressed at the end
func (d *Dispatcher) togglePlay() Result {
	st := d.store.State()
	total := st.TotalDuration()
	if !st.IsPlaying && total > 0 && st.CurrentTime >= total {
		d.store.Seek(0)
	}
	return changed(d.store.Toggle())
}

func (d *Dispatcher) seekClick(a Action) Result {
	if a.Row < d.cfg.ContentTop || a.Column <= d.cfg.HeaderColumns {
		return Result{}
	}
	st := d.store.State()
	// Mouse columns are 1-based
	t := d.layoutFor(st).ColumnToTime(a.Column-1, st.TotalDuration())
	return changed(d.store.Seek(t))
}

func (d *Dispatcher) cycleSelection(dir int) Result {
	st := d.store.State()
	entries := Entries(st)
	if len(entries) == 0 {
		return Result{Message: "Timeline is empty"}
	}
	d.sorter.Sort(entries)

	cur := -1
	if len(st.SelectedElementIDs) > 0 {
		last := st.SelectedElementIDs[len(st.SelectedElementIDs)-1]
		for i, e := range entries {
			if e.Element.ID == last {
				cur = i
				break
			}
		}
	}

	next := 0
	switch {
	case cur >= 0:
		next = (cur + dir + len(entries)) % len(entries)
	case dir < 0:
		next = len(entries) - 1
	}
	el := entries[next].Element
	d.store.SelectElement(el.ID, false)
	return Result{Changed: true, Message: "Selected " + el.Name}
}

// toggleAtPlayhead toggles the topmost element under the playhead in the
// selection, leaving the rest of the selection alone. The first track is on
// top; inside it later elements cover earlier ones.
func (d *Dispatcher) toggleAtPlayhead() Result {
	st := d.store.State()
	refs := st.ElementsAt(st.CurrentTime)
	if len(refs) == 0 {
		return Result{Message: "No element at playhead"}
	}
	top := refs[0]
	for _, ref := range refs[1:] {
		if ref.TrackID != top.TrackID {
			break
		}
		top = ref
	}
	return changed(d.store.SelectElement(top.ElementID, true))
}

type trimFunc func(el model.Element, at float64) (model.ElementPatch, bool)

func (d *Dispatcher) trim(fn trimFunc, format string) Result {
	st := d.store.State()
	n := 0
	for _, id := range st.SelectedElementIDs {
		trackID, el, ok := st.FindElement(id)
		if !ok {
			continue
		}
		patch, ok := fn(el, st.CurrentTime)
		if !ok {
			continue
		}
		if d.store.UpdateElement(trackID, id, patch) {
			n++
		}
	}
	return counted(n, format, "Playhead is not inside a selected element")
}

// nudge shifts the selected elements by delta, snapping each to nearby
// edges when snapping is on
func (d *Dispatcher) nudge(delta float64) Result {
	st := d.store.State()
	if len(st.SelectedElementIDs) == 0 {
		return Result{Message: "Nothing selected"}
	}

	snapper := geometry.Snapper{
		Mapper:      geometry.NewMapper(d.cfg.BasePixelsPerSecond, st.ZoomLevel),
		ThresholdPx: d.cfg.SnapThresholdPx,
	}
	edges := geometry.Edges(st, st.SelectedElementIDs...)

	n := 0
	for _, id := range st.SelectedElementIDs {
		trackID, el, ok := st.FindElement(id)
		if !ok {
			continue
		}
		start := el.StartTime + delta
		if st.SnappingEnabled {
			start, _ = snapper.SnapSpan(start, el.EffectiveLength(), edges)
			// A snap back onto the current position would swallow the nudge
			if start == el.StartTime {
				start = el.StartTime + delta
			}
		}
		if d.store.UpdateElement(trackID, id, model.ElementPatch{StartTime: model.Float(start)}) {
			n++
		}
	}
	if n > 0 {
		util.LogDebugf("Nudged %d element(s) by %.2fs", n, delta)
	}
	return changed(n > 0)
}

func (d *Dispatcher) addText() Result {
	at := d.store.State().CurrentTime
	_, id := d.store.AddTrackWithElement(model.TrackText, model.ElementPatch{StartTime: model.Float(at)})
	if id == "" {
		return Result{Message: "Could not add text"}
	}
	d.store.SelectElement(id, false)
	return Result{Changed: true, Message: "Added text at " + util.FormatTimecode(at)}
}

func (d *Dispatcher) stepSpeed(dir int) Result {
	cur := d.store.State().Speed
	next := cur
	if dir > 0 {
		for _, p := range speedPresets {
			if p > cur+1e-9 {
				next = p
				break
			}
		}
	} else {
		for i := len(speedPresets) - 1; i >= 0; i-- {
			if speedPresets[i] < cur-1e-9 {
				next = speedPresets[i]
				break
			}
		}
	}
	if !d.store.SetSpeed(next) {
		return Result{}
	}
	return Result{Changed: true, Message: "Speed " + util.FormatRate(next)}
}
