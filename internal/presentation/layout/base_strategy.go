package layout

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-timeline-editor/internal/core/geometry"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

const (
	defaultHeader = 14
	defaultBase   = 50.0
	defaultPPC    = 10.0

	// minTickSpacing is the narrowest gap in columns between ruler labels
	minTickSpacing = 8
)

var tickSteps = []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 30, 60, 120, 300, 600, 1800, 3600}

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
}

// View is the geometry of one frame
type View struct {
	Layout  geometry.Layout
	Header  int
	Content int
	Width   int
	Color   bool
}

// NewView derives the frame geometry for st, filling unset parameters
func (b *BaseStrategy) NewView(st model.EditorState, p model.LayoutParam) View {
	width := p.Width
	if width <= 0 {
		width = fallbackWidth
	}
	header := p.HeaderWidth
	if header <= 0 {
		header = defaultHeader
	}
	if header > width/2 {
		header = width / 2
	}
	base := p.BasePixelsPerSecond
	if base <= 0 {
		base = defaultBase
	}
	ppc := p.PixelsPerColumn
	if ppc <= 0 {
		ppc = defaultPPC
	}

	l := geometry.Layout{
		Mapper:          geometry.NewMapper(base, st.ZoomLevel),
		HeaderColumns:   header,
		PixelsPerColumn: ppc,
	}
	content := width - header
	l.Offset = l.ViewOffset(st.CurrentTime, content)

	return View{Layout: l, Header: header, Content: content, Width: width, Color: p.Color}
}

// column maps a time to a visible content column, possibly out of range
func (v View) column(t float64) int {
	return v.Layout.TimeToColumn(t) - v.Layout.Offset
}

// Gutter renders the fixed header cell of a row
func (b *BaseStrategy) Gutter(label string, v View) string {
	return util.PadToWidth(label, v.Header-1) + "│"
}

// TrackRow draws one track lane
func (b *BaseStrategy) TrackRow(track model.Track, st model.EditorState, v View) string {
	cells := blankRow(v.Content, ' ')

	for _, el := range track.Elements {
		start, end := v.column(el.StartTime), v.column(el.EndTime())
		if end <= start {
			end = start + 1
		}
		if end <= 0 || start >= v.Content {
			continue
		}

		selected := st.IsSelected(el.ID)
		style := kindColor(el.Kind)
		open, close := '[', ']'
		if selected {
			style = util.ColorReverse + style
			open, close = '{', '}'
		}

		for c := start; c < end; c++ {
			cells.put(c, kindFill(el.Kind), style)
		}
		cells.put(start, open, style)
		if end-1 > start {
			cells.put(end-1, close, style)
		}
		cells.text(start+1, end-1, elementLabel(el), style)
	}

	b.markPlayhead(cells, st, v, '│')
	label := fmt.Sprintf("%s %s", kindLabel(track.Kind), track.Name)
	return b.Gutter(label, v) + cells.render(v.Color)
}

// RulerMarks draws tick marks and the playhead marker
func (b *BaseStrategy) RulerMarks(st model.EditorState, v View) string {
	cells := blankRow(v.Content, '─')
	b.eachTick(v, func(col int, _ float64) {
		cells.put(col, '┬', "")
	})
	b.markPlayhead(cells, st, v, '▼')
	gutter := fmt.Sprintf("zoom %s", util.FormatRate(st.ZoomLevel))
	return b.Gutter(gutter, v) + cells.render(v.Color)
}

// RulerLabels draws the time label above each tick
func (b *BaseStrategy) RulerLabels(st model.EditorState, v View) string {
	cells := blankRow(v.Content, ' ')
	b.eachTick(v, func(col int, t float64) {
		cells.text(col, v.Content, rulerLabel(t), "")
	})
	gutter := util.FormatTimecode(st.CurrentTime) + "/" + util.FormatTimecode(st.TotalDuration())
	return b.Gutter(gutter, v) + cells.render(v.Color)
}

func (b *BaseStrategy) markPlayhead(cells row, st model.EditorState, v View, marker rune) {
	col := v.column(st.CurrentTime)
	if col >= 0 && col < v.Content {
		cells.put(col, marker, util.ColorRed+util.ColorBold)
	}
}

// TickStep picks the smallest round interval whose labels do not collide
func (b *BaseStrategy) TickStep(v View) float64 {
	perColumn := v.Layout.SecondsPerColumn()
	for _, step := range tickSteps {
		if step/perColumn >= minTickSpacing {
			return step
		}
	}
	return tickSteps[len(tickSteps)-1]
}

func (b *BaseStrategy) eachTick(v View, fn func(col int, t float64)) {
	step := b.TickStep(v)
	first := v.Layout.PixelsToTime(float64(v.Layout.Offset) * v.Layout.PixelsPerColumn)
	i := math.Ceil(first/step - 1e-9)
	for n := 0; n <= v.Content; n++ {
		t := (i + float64(n)) * step
		col := v.column(t)
		if col >= v.Content {
			return
		}
		if col >= 0 {
			fn(col, t)
		}
	}
}

func rulerLabel(t float64) string {
	return strings.TrimSuffix(util.FormatTimecode(t), ".0")
}

func elementLabel(el model.Element) string {
	if el.Kind == model.TrackText && el.Content != "" {
		return el.Content
	}
	return el.Name
}

// StatusLine summarises playback and view settings
func (b *BaseStrategy) StatusLine(st model.EditorState) string {
	state := "■ Paused"
	if st.IsPlaying {
		state = "▶ Playing"
	}
	vol := "vol " + util.FormatPercent(st.Volume)
	if st.Muted {
		vol += " (muted)"
	}
	snap := "off"
	if st.SnappingEnabled {
		snap = "on"
	}
	return fmt.Sprintf("%s  %s / %s  %s  speed %s  snap %s  %d selected",
		state,
		util.FormatTimecode(st.CurrentTime),
		util.FormatTimecode(st.TotalDuration()),
		vol,
		util.FormatRate(st.Speed),
		snap,
		len(st.SelectedElementIDs))
}

// Inspector describes the current selection
func (b *BaseStrategy) Inspector(st model.EditorState) string {
	switch len(st.SelectedElementIDs) {
	case 0:
		if el, ok := st.PreviewAt(st.CurrentTime); ok {
			return fmt.Sprintf("No selection. Preview: %s at %s. Tab selects, ? shows help.",
				el.Name, util.FormatSeconds(el.SourceIn()+st.CurrentTime-el.StartTime))
		}
		return "No selection. Tab selects, Ctrl+S splits at the playhead, ? shows help."
	case 1:
	default:
		return fmt.Sprintf("%d elements selected", len(st.SelectedElementIDs))
	}

	_, el, ok := st.FindElement(st.SelectedElementIDs[0])
	if !ok {
		return ""
	}
	line := fmt.Sprintf("%s %q  start %s  length %s  source %s-%s",
		kindLabel(el.Kind),
		elementLabel(el),
		util.FormatTimecode(el.StartTime),
		util.FormatSeconds(el.EffectiveLength()),
		util.FormatSeconds(el.SourceIn()),
		util.FormatSeconds(el.SourceOut()))
	if el.Kind == model.TrackText {
		line += fmt.Sprintf("  %dpx %s at %.0f%%,%.0f%%", el.FontSize, el.Color, el.X, el.Y)
	}
	return line
}

// Title is the header line naming the source
func (b *BaseStrategy) Title(st model.EditorState, v View) string {
	title := "go-timeline-editor"
	if st.SourceURL != "" {
		title += "  " + path.Base(strings.SplitN(st.SourceURL, "?", 2)[0])
	}
	title = util.TruncateToWidth(title, v.Width)
	if v.Color {
		return util.FormatHeaderTitle(title)
	}
	return title
}

// Fit truncates a plain line to the frame width
func (b *BaseStrategy) Fit(line string, v View) string {
	return util.TruncateToWidth(line, v.Width)
}

type cell struct {
	r     rune // 0 marks the second column of a wide rune
	style string
}

type row []cell

func blankRow(n int, fill rune) row {
	if n < 0 {
		n = 0
	}
	r := make(row, n)
	for i := range r {
		r[i] = cell{r: fill}
	}
	return r
}

func (r row) put(col int, ch rune, style string) {
	if col < 0 || col >= len(r) {
		return
	}
	// Overwriting half of a wide rune blanks the other half
	if r[col].r == 0 && col > 0 {
		r[col-1].r = ' '
	}
	if col+1 < len(r) && r[col+1].r == 0 {
		r[col+1].r = ' '
	}
	r[col] = cell{r: ch, style: style}
}

// text writes s from col up to limit (exclusive). Columns left of zero are
// skipped so labels of blocks scrolled off the left edge stay aligned.
func (r row) text(col, limit int, s string, style string) {
	if limit > len(r) {
		limit = len(r)
	}
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > limit {
			return
		}
		if col >= 0 {
			r.put(col, ch, style)
			if w == 2 {
				r[col+1] = cell{r: 0, style: style}
			}
		}
		col += w
	}
}

func (r row) render(color bool) string {
	var sb strings.Builder
	current := ""
	for _, c := range r {
		if color && c.style != current {
			if current != "" {
				sb.WriteString(util.ColorReset)
			}
			sb.WriteString(c.style)
			current = c.style
		}
		if c.r != 0 {
			sb.WriteRune(c.r)
		}
	}
	if color && current != "" {
		sb.WriteString(util.ColorReset)
	}
	return sb.String()
}
