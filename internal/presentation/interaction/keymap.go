package interaction

// ActionKind names an editor command bound to a key
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionTogglePlay
	ActionSeekBack
	ActionSeekForward
	ActionSeekBackLarge
	ActionSeekForwardLarge
	ActionSeekStart
	ActionSeekEnd
	ActionSeekClick
	ActionRemoveSelected
	ActionClearSelection
	ActionSplit
	ActionZoomIn
	ActionZoomOut
	ActionToggleSnapping
	ActionSelectNext
	ActionSelectPrev
	ActionToggleSelectAtPlayhead
	ActionTrimHead
	ActionTrimTail
	ActionNudgeBack
	ActionNudgeForward
	ActionAddText
	ActionToggleMute
	ActionVolumeDown
	ActionVolumeUp
	ActionSpeedDown
	ActionSpeedUp
	ActionUndo
	ActionRedo
	ActionToggleHelp
	ActionToggleLayout
	ActionQuit
)

// Action is a resolved command. Column and Row are set for pointer actions.
type Action struct {
	Kind   ActionKind
	Column int
	Row    int
}

// Binding documents one key for the help overlay
type Binding struct {
	Keys        string
	Description string
}

// Bindings lists the keymap in help order
var Bindings = []Binding{
	{"Space", "Play / pause"},
	{"← / →", "Seek 1s"},
	{"Shift+← / →", "Seek 5s"},
	{"Home / End", "Jump to start / end"},
	{"Click", "Seek to pointer"},
	{"Tab / Shift+Tab", "Select next / previous"},
	{"a", "Toggle selection under playhead"},
	{"Esc", "Clear selection"},
	{"Delete", "Remove selected"},
	{"Ctrl+S", "Split at playhead"},
	{"i / o", "Trim in / out to playhead"},
	{", / .", "Nudge selected"},
	{"t", "Add text at playhead"},
	{"+ / -", "Zoom in / out"},
	{"n", "Toggle snapping"},
	{"m", "Mute"},
	{"9 / 0", "Volume down / up"},
	{"[ / ]", "Slower / faster"},
	{"u / r", "Undo / redo"},
	{"v", "Switch full / minimal view"},
	{"? / h", "Help"},
	{"q", "Quit"},
}

var charActions = map[rune]ActionKind{
	' ': ActionTogglePlay,
	'+': ActionZoomIn,
	'=': ActionZoomIn,
	'-': ActionZoomOut,
	'_': ActionZoomOut,
	'n': ActionToggleSnapping,
	'a': ActionToggleSelectAtPlayhead,
	'i': ActionTrimHead,
	'o': ActionTrimTail,
	',': ActionNudgeBack,
	'.': ActionNudgeForward,
	't': ActionAddText,
	'm': ActionToggleMute,
	'9': ActionVolumeDown,
	'0': ActionVolumeUp,
	'[': ActionSpeedDown,
	']': ActionSpeedUp,
	'u': ActionUndo,
	'r': ActionRedo,
	'?': ActionToggleHelp,
	'h': ActionToggleHelp,
	'v': ActionToggleLayout,
	'q': ActionQuit,
	'Q': ActionQuit,
}

var ctrlActions = map[rune]ActionKind{
	'c': ActionQuit,
	's': ActionSplit,
	'z': ActionUndo,
	'y': ActionRedo,
}

// Resolve maps an input event to an action. ok is false for unbound input.
func Resolve(ev KeyEvent) (Action, bool) {
	kind := ActionNone
	switch ev.Type {
	case KeyChar:
		kind = charActions[ev.Key]
	case KeyCtrl:
		kind = ctrlActions[ev.Key]
	case KeyEscape:
		kind = ActionClearSelection
	case KeyDelete, KeyBackspace:
		kind = ActionRemoveSelected
	case KeyLeft:
		kind = pick(ev.Shift, ActionSeekBackLarge, ActionSeekBack)
	case KeyRight:
		kind = pick(ev.Shift, ActionSeekForwardLarge, ActionSeekForward)
	case KeyHome:
		kind = ActionSeekStart
	case KeyEnd:
		kind = ActionSeekEnd
	case KeyTab:
		kind = pick(ev.Shift, ActionSelectPrev, ActionSelectNext)
	case KeyMouse:
		if ev.Button == 0 && !ev.Release {
			return Action{Kind: ActionSeekClick, Column: ev.X, Row: ev.Y}, true
		}
	}
	if kind == ActionNone {
		return Action{}, false
	}
	return Action{Kind: kind}, true
}

func pick(cond bool, yes, no ActionKind) ActionKind {
	if cond {
		return yes
	}
	return no
}
