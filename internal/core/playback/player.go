package playback

// MediaPlayer is the media primitive the editor drives. Implementations
// report their position through TimeUpdates while playing and whenever the
// position jumps.
type MediaPlayer interface {
	Play()
	Pause()
	Seek(t float64)
	Position() float64
	SetVolume(v float64)
	SetMuted(muted bool)
	SetRate(rate float64)
	TimeUpdates() <-chan float64
}

// DurationSetter is implemented by players whose length follows the
// timeline rather than a decoded file
type DurationSetter interface {
	SetDuration(d float64)
}
