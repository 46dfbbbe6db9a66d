package model

// DisplayMode represents what the terminal editor is currently showing
type DisplayMode int

const (
	ModeNormal DisplayMode = iota
	ModeHelp
	ModeDialog
)

// Layout styles
const (
	LayoutFull = iota
	LayoutMinimal
)

// InteractionState represents the current UI interaction state of the
// terminal editor. It never holds timeline data; that lives in the store.
type InteractionState struct {
	ShowHelp      bool
	StatusMessage string // Status message to display
	LayoutStyle   int
	ConfirmDialog *ConfirmDialog
}

// Mode resolves the display mode. Dialog wins over help.
func (s InteractionState) Mode() DisplayMode {
	if s.ConfirmDialog != nil {
		return ModeDialog
	}
	if s.ShowHelp {
		return ModeHelp
	}
	return ModeNormal
}

// ConfirmDialog represents a confirmation dialog
type ConfirmDialog struct {
	Title     string
	Message   string
	OnConfirm func()
	OnCancel  func()
}

// FileEvent represents a file system event
type FileEvent struct {
	Path      string
	Operation string
}

// LayoutParam carries geometry settings for rendering
type LayoutParam struct {
	BasePixelsPerSecond float64
	PixelsPerColumn     float64
	HeaderWidth         int
	Width               int
	Height              int
	Color               bool
	StatusMessage       string
}
