package e2e

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[?0-9;]*[a-zA-Z]`)

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// TerminalScreen is a virtual terminal that understands the subset of
// escape sequences the editor writes
type TerminalScreen struct {
	rows    int
	cols    int
	buffer  [][]rune
	cursorX int
	cursorY int

	// Private modes such as the alternate screen (1049) and mouse reporting
	modes map[int]bool
}

// NewTerminalScreen creates a blank screen
func NewTerminalScreen(rows, cols int) *TerminalScreen {
	s := &TerminalScreen{
		rows:  rows,
		cols:  cols,
		modes: make(map[int]bool),
	}
	s.buffer = make([][]rune, rows)
	for i := range s.buffer {
		s.buffer[i] = blankRow(cols)
	}
	return s
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for j := range row {
		row[j] = ' '
	}
	return row
}

// ParseTerminalOutput replays output onto a rows x cols screen
func ParseTerminalOutput(output string, rows, cols int) *TerminalScreen {
	screen := NewTerminalScreen(rows, cols)
	screen.Write(output)
	return screen
}

// Write replays output onto the screen
func (s *TerminalScreen) Write(output string) {
	runes := []rune(output)
	for i := 0; i < len(runes); {
		switch {
		case runes[i] == '\x1b' && i+1 < len(runes) && runes[i+1] == '[':
			i = s.handleCSI(runes, i+2)
		case runes[i] == '\x1b':
			// Lone ESC or an unsupported sequence; drop the introducer
			i += 2
		case runes[i] == '\r':
			s.cursorX = 0
			i++
		case runes[i] == '\n':
			s.lineFeed()
			i++
		case runes[i] == '\b':
			if s.cursorX > 0 {
				s.cursorX--
			}
			i++
		default:
			s.putChar(runes[i])
			i++
		}
	}
}

func (s *TerminalScreen) handleCSI(runes []rune, i int) int {
	private := false
	if i < len(runes) && runes[i] == '?' {
		private = true
		i++
	}

	params := []int{}
	current := 0
	for ; i < len(runes); i++ {
		switch r := runes[i]; {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
		case r == ';':
			params = append(params, current)
			current = 0
		default:
			params = append(params, current)
			if private {
				s.handleMode(r, params)
			} else {
				s.handleCommand(r, params)
			}
			return i + 1
		}
	}
	return i
}

func (s *TerminalScreen) handleMode(cmd rune, params []int) {
	for _, p := range params {
		switch cmd {
		case 'h':
			s.modes[p] = true
		case 'l':
			s.modes[p] = false
		}
	}
}

func param(params []int, i, def int) int {
	if i < len(params) && params[i] > 0 {
		return params[i]
	}
	return def
}

func (s *TerminalScreen) handleCommand(cmd rune, params []int) {
	switch cmd {
	case 'H', 'f':
		s.cursorY = clampInt(param(params, 0, 1)-1, 0, s.rows-1)
		s.cursorX = clampInt(param(params, 1, 1)-1, 0, s.cols-1)
	case 'J':
		switch params[0] {
		case 0:
			s.clearLineFrom(s.cursorX)
			for i := s.cursorY + 1; i < s.rows; i++ {
				s.buffer[i] = blankRow(s.cols)
			}
		case 2, 3:
			for i := range s.buffer {
				s.buffer[i] = blankRow(s.cols)
			}
		}
	case 'K':
		switch params[0] {
		case 0:
			s.clearLineFrom(s.cursorX)
		case 2:
			s.buffer[s.cursorY] = blankRow(s.cols)
		}
	case 'A':
		s.cursorY = clampInt(s.cursorY-param(params, 0, 1), 0, s.rows-1)
	case 'B':
		s.cursorY = clampInt(s.cursorY+param(params, 0, 1), 0, s.rows-1)
	case 'C':
		s.cursorX = clampInt(s.cursorX+param(params, 0, 1), 0, s.cols-1)
	case 'D':
		s.cursorX = clampInt(s.cursorX-param(params, 0, 1), 0, s.cols-1)
	}
	// 'm' and anything else only affect attributes
}

func (s *TerminalScreen) clearLineFrom(x int) {
	for j := x; j < s.cols; j++ {
		s.buffer[s.cursorY][j] = ' '
	}
}

func (s *TerminalScreen) putChar(ch rune) {
	w := runewidth.RuneWidth(ch)
	if w == 0 {
		return
	}
	if s.cursorX+w > s.cols {
		s.lineFeed()
	}
	s.buffer[s.cursorY][s.cursorX] = ch
	for k := 1; k < w; k++ {
		s.buffer[s.cursorY][s.cursorX+k] = 0
	}
	s.cursorX += w
}

func (s *TerminalScreen) lineFeed() {
	s.cursorX = 0
	s.cursorY++
	if s.cursorY >= s.rows {
		copy(s.buffer, s.buffer[1:])
		s.buffer[s.rows-1] = blankRow(s.cols)
		s.cursorY = s.rows - 1
	}
}

// ModeSet reports whether private mode n (for example 1049) is on
func (s *TerminalScreen) ModeSet(n int) bool {
	return s.modes[n]
}

// GetLine returns one screen row without trailing blanks
func (s *TerminalScreen) GetLine(line int) string {
	if line < 0 || line >= s.rows {
		return ""
	}
	var b strings.Builder
	for _, r := range s.buffer[line] {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Render returns the screen content as a string
func (s *TerminalScreen) Render() string {
	lines := make([]string, s.rows)
	for i := range lines {
		lines[i] = s.GetLine(i)
	}
	return strings.Join(lines, "\n")
}

// ContainsText checks if the screen contains specific text
func (s *TerminalScreen) ContainsText(text string) bool {
	return strings.Contains(s.Render(), text)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
