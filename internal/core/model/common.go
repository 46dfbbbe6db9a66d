package model

// Track kinds
const (
	TrackVideo TrackKind = "video"
	TrackAudio TrackKind = "audio"
	TrackText  TrackKind = "text"
)

// Text element defaults applied by AddElement when the caller leaves them unset
const (
	DefaultTextContent     = "Text"
	DefaultTextFontSize    = 48
	DefaultTextColor       = "#ffffff"
	DefaultTextX           = 50.0
	DefaultTextY           = 50.0
	DefaultElementDuration = 5.0
)

// MinElementLength is the shortest effective length a trim may leave behind.
const MinElementLength = 0.1

// Playback defaults for a fresh editing session
const (
	DefaultVolume = 1.0
	DefaultSpeed  = 1.0
	DefaultZoom   = 1.0
	SpeedMin      = 0.25
	SpeedMax      = 4.0
)
