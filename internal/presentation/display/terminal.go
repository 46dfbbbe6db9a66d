package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/presentation/interaction"
	"github.com/penwyp/go-timeline-editor/internal/presentation/layout"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// DisplayConfig holds the fixed rendering parameters
type DisplayConfig struct {
	BasePixelsPerSecond float64
	PixelsPerColumn     float64
	HeaderWidth         int
	Color               bool
}

// TerminalDisplay paints frames into the alternate screen. Only rows that
// differ from the previous frame are rewritten.
type TerminalDisplay struct {
	config            *DisplayConfig
	out               io.Writer
	inAlternateScreen bool
	lastLayoutStyle   int
	lastWidth         int
	previousScreen    []string
	isFirstRender     bool
	currentMode       model.DisplayMode
}

// NewTerminalDisplay writes to stdout
func NewTerminalDisplay(config *DisplayConfig) *TerminalDisplay {
	return NewTerminalDisplayWriter(config, os.Stdout)
}

// NewTerminalDisplayWriter writes to out
func NewTerminalDisplayWriter(config *DisplayConfig, out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{
		config:         config,
		out:            out,
		previousScreen: make([]string, 0),
		isFirstRender:  true,
		currentMode:    model.ModeNormal,
	}
}

// EnterAlternateScreen switches to the alternate screen buffer and turns on
// mouse reporting
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAltScreen)
	fmt.Fprint(td.out, util.ClearScreen)
	fmt.Fprint(td.out, util.ClearScrollback)
	fmt.Fprint(td.out, util.MoveCursorHome)
	fmt.Fprint(td.out, util.HideCursor)
	fmt.Fprint(td.out, util.EnableMouseTracking)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen restores the normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.DisableMouseTracking)
	fmt.Fprint(td.out, util.ClearScreen)
	fmt.Fprint(td.out, util.MoveCursorHome)
	fmt.Fprint(td.out, util.ShowCursor)
	fmt.Fprint(td.out, util.ExitAltScreen)
	td.inAlternateScreen = false
}

// ClearForTransition wipes the screen and forgets the previous frame
func (td *TerminalDisplay) ClearForTransition() {
	fmt.Fprint(td.out, util.ClearScreen)
	fmt.Fprint(td.out, util.MoveCursorHome)
	td.previousScreen = make([]string, 0)
}

// RenderWithState draws the editor, the help screen or the confirm dialog
// depending on the interaction state
func (td *TerminalDisplay) RenderWithState(st model.EditorState, state model.InteractionState, size *layout.Sizer) {
	mode := state.Mode()
	if td.isFirstRender || mode != td.currentMode ||
		state.LayoutStyle != td.lastLayoutStyle || size.Width != td.lastWidth {
		td.ClearForTransition()
		td.isFirstRender = false
		td.currentMode = mode
		td.lastLayoutStyle = state.LayoutStyle
		td.lastWidth = size.Width
	}

	var lines []string
	switch mode {
	case model.ModeDialog:
		lines = td.dialogLines(state.ConfirmDialog, size.Width)
	case model.ModeHelp:
		lines = td.helpLines(size.Width)
	default:
		strategy := layout.GetLayoutStrategy(state.LayoutStyle)
		lines = strategy.Render(st, td.layoutParam(state, size))
	}

	td.paint(lines, size.Height)
}

func (td *TerminalDisplay) layoutParam(state model.InteractionState, size *layout.Sizer) model.LayoutParam {
	return model.LayoutParam{
		BasePixelsPerSecond: td.config.BasePixelsPerSecond,
		PixelsPerColumn:     td.config.PixelsPerColumn,
		HeaderWidth:         td.config.HeaderWidth,
		Width:               size.Width,
		Height:              size.Height,
		Color:               td.config.Color,
		StatusMessage:       state.StatusMessage,
	}
}

// paint rewrites the rows that changed since the last frame
func (td *TerminalDisplay) paint(lines []string, height int) {
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}

	var sb strings.Builder
	for i, line := range lines {
		if i < len(td.previousScreen) && td.previousScreen[i] == line {
			continue
		}
		sb.WriteString(util.MoveCursor(i+1, 1))
		sb.WriteString(line)
		sb.WriteString(util.ClearLineFromCursor)
	}
	if len(lines) < len(td.previousScreen) {
		sb.WriteString(util.MoveCursor(len(lines)+1, 1))
		sb.WriteString(util.ClearToEnd)
	}
	if sb.Len() > 0 {
		fmt.Fprint(td.out, sb.String())
	}

	td.previousScreen = append(td.previousScreen[:0], lines...)
}

func (td *TerminalDisplay) helpLines(width int) []string {
	rule := strings.Repeat("═", width)
	lines := []string{
		"go-timeline-editor - Help",
		rule,
		"",
		"Keyboard shortcuts:",
		"",
	}
	for _, b := range interaction.Bindings {
		line := "  " + util.PadToWidth(b.Keys, 14) + " " + b.Description
		lines = append(lines, util.TruncateToWidth(line, width))
	}
	lines = append(lines,
		"",
		"Click the ruler or a track row to move the playhead.",
		"",
		rule,
		"Press '?' to return...",
	)
	return lines
}

func (td *TerminalDisplay) dialogLines(dialog *model.ConfirmDialog, width int) []string {
	boxWidth := 60
	if boxWidth > width-2 {
		boxWidth = width - 2
	}
	pad := strings.Repeat(" ", (width-boxWidth)/2)
	inner := boxWidth - 2

	lines := []string{"", "", "", ""}
	lines = append(lines,
		pad+"╔"+strings.Repeat("═", inner)+"╗",
		pad+"║"+util.CenterText(dialog.Title, inner)+"║",
		pad+"╠"+strings.Repeat("═", inner)+"╣",
		pad+"║"+strings.Repeat(" ", inner)+"║",
	)
	for _, line := range wrapText(dialog.Message, inner-2) {
		lines = append(lines, pad+"║ "+util.PadToWidth(line, inner-2)+" ║")
	}
	lines = append(lines,
		pad+"║"+strings.Repeat(" ", inner)+"║",
		pad+"║"+util.CenterText("(Y)es / (N)o", inner)+"║",
		pad+"╚"+strings.Repeat("═", inner)+"╝",
	)
	return lines
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{}
	}

	if util.GetDisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
		} else if util.GetDisplayWidth(currentLine)+1+util.GetDisplayWidth(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
