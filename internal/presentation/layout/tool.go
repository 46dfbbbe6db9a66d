package layout

import (
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

func kindLabel(kind model.TrackKind) string {
	switch kind {
	case model.TrackVideo:
		return "V"
	case model.TrackAudio:
		return "A"
	case model.TrackText:
		return "T"
	default:
		return "?"
	}
}

// kindFill is the rune drawn across the body of an element block
func kindFill(kind model.TrackKind) rune {
	switch kind {
	case model.TrackAudio:
		return '~'
	case model.TrackText:
		return '-'
	default:
		return '='
	}
}

func kindColor(kind model.TrackKind) string {
	switch kind {
	case model.TrackVideo:
		return util.ColorBlue
	case model.TrackAudio:
		return util.ColorGreen
	case model.TrackText:
		return util.ColorYellow
	default:
		return ""
	}
}
