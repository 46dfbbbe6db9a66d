package interaction

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// ErrNotTerminal is returned when stdin cannot be put into raw mode
var ErrNotTerminal = errors.New("stdin is not a terminal")

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyCtrl
	KeyMouse
)

// KeyEvent represents a keyboard or mouse event. For KeyCtrl, Key is the
// lowercase letter held with Ctrl. Mouse coordinates are 1-based terminal
// cells.
type KeyEvent struct {
	Key   rune
	Type  KeyType
	Shift bool

	Button  int
	X, Y    int
	Release bool
}

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	fd       int
	oldState *unix.Termios
	input    chan KeyEvent
	stop     chan struct{}
	once     sync.Once
}

// NewKeyboardReader puts stdin into raw mode and starts reading events
func NewKeyboardReader() (*KeyboardReader, error) {
	fd := int(os.Stdin.Fd())
	if !isatty.IsTerminal(uintptr(fd)) && !isatty.IsCygwinTerminal(uintptr(fd)) {
		return nil, ErrNotTerminal
	}

	kr := &KeyboardReader{
		fd:    fd,
		input: make(chan KeyEvent, 32),
		stop:  make(chan struct{}),
	}

	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}

	go kr.readInput()

	return kr, nil
}

func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 256)

	for {
		select {
		case <-kr.stop:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}

		for _, event := range parseInput(buf[:n]) {
			select {
			case kr.input <- event:
			case <-kr.stop:
				return
			}
		}
	}
}

// parseInput splits one read into events. A read may carry several keys
// when input arrives faster than it is consumed.
func parseInput(buf []byte) []KeyEvent {
	var events []KeyEvent
	for len(buf) > 0 {
		event, n := parseOne(buf)
		if n <= 0 {
			break
		}
		if event != nil {
			events = append(events, *event)
		}
		buf = buf[n:]
	}
	return events
}

func parseOne(buf []byte) (*KeyEvent, int) {
	b := buf[0]
	switch {
	case b == 27:
		return parseEscape(buf)
	case b == '\r' || b == '\n':
		return &KeyEvent{Type: KeyEnter}, 1
	case b == '\t':
		return &KeyEvent{Type: KeyTab}, 1
	case b == 127 || b == 8:
		return &KeyEvent{Type: KeyBackspace}, 1
	case b >= 1 && b <= 26:
		return &KeyEvent{Type: KeyCtrl, Key: rune('a' + b - 1)}, 1
	case b < 32:
		return nil, 1
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return nil, 1
	}
	return &KeyEvent{Type: KeyChar, Key: r}, size
}

func parseEscape(buf []byte) (*KeyEvent, int) {
	if len(buf) == 1 {
		return &KeyEvent{Type: KeyEscape, Key: 27}, 1
	}

	switch buf[1] {
	case 'O':
		if len(buf) < 3 {
			return &KeyEvent{Type: KeyEscape, Key: 27}, 1
		}
		if t, ok := ss3Keys[buf[2]]; ok {
			return &KeyEvent{Type: t}, 3
		}
		return nil, 3
	case '[':
		return parseCSI(buf)
	}
	return &KeyEvent{Type: KeyEscape, Key: 27}, 1
}

var ss3Keys = map[byte]KeyType{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
}

var tildeKeys = map[int]KeyType{
	1: KeyHome, 7: KeyHome,
	4: KeyEnd, 8: KeyEnd,
	3: KeyDelete,
}

// parseCSI decodes ESC [ params final
func parseCSI(buf []byte) (*KeyEvent, int) {
	end := 2
	for end < len(buf) && (buf[end] < 0x40 || buf[end] > 0x7e) {
		end++
	}
	if end >= len(buf) {
		return nil, len(buf)
	}
	final := buf[end]
	params := string(buf[2:end])
	n := end + 1

	if len(params) > 0 && params[0] == '<' {
		return parseSGRMouse(params[1:], final), n
	}

	args := splitParams(params)
	shift := len(args) >= 2 && args[1] == 2

	switch final {
	case 'A', 'B', 'C', 'D', 'H', 'F':
		return &KeyEvent{Type: ss3Keys[final], Shift: shift}, n
	case 'Z':
		return &KeyEvent{Type: KeyTab, Shift: true}, n
	case '~':
		if len(args) > 0 {
			if t, ok := tildeKeys[args[0]]; ok {
				return &KeyEvent{Type: t, Shift: shift}, n
			}
		}
	}
	return nil, n
}

// parseSGRMouse decodes "b;x;y" with final M (press) or m (release)
func parseSGRMouse(params string, final byte) *KeyEvent {
	args := splitParams(params)
	if len(args) != 3 || (final != 'M' && final != 'm') {
		return nil
	}
	return &KeyEvent{
		Type:    KeyMouse,
		Button:  args[0],
		X:       args[1],
		Y:       args[2],
		Release: final == 'm',
	}
}

func splitParams(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ';' {
			v, err := strconv.Atoi(s[start:i])
			if err != nil {
				v = 0
			}
			out = append(out, v)
			start = i + 1
		}
	}
	return out
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores the terminal
func (kr *KeyboardReader) Close() error {
	var err error
	kr.once.Do(func() {
		close(kr.stop)
		err = kr.disableRawMode()
	})
	return err
}
