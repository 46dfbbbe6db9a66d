package playback

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
)

// ClockPlayer is a software media clock. It has no decoder: position
// advances with wall time scaled by the rate, and stops at the duration.
type ClockPlayer struct {
	mu       sync.Mutex
	position float64
	anchor   time.Time
	duration float64
	rate     float64
	volume   float64
	muted    bool
	playing  bool

	tick    time.Duration
	updates chan float64
	now     func() time.Time
}

// NewClockPlayer creates a paused clock at position zero
func NewClockPlayer(duration float64, tick time.Duration) *ClockPlayer {
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}
	return &ClockPlayer{
		duration: math.Max(duration, 0),
		rate:     model.DefaultSpeed,
		volume:   model.DefaultVolume,
		tick:     tick,
		updates:  make(chan float64, 1),
		now:      time.Now,
	}
}

// Run emits time updates every tick while playing until ctx is done
func (p *ClockPlayer) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.step()
		}
	}
}

// step advances a playing clock and publishes the new position
func (p *ClockPlayer) step() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.fold()
	if p.position >= p.duration {
		p.position = p.duration
		p.playing = false
	}
	pos := p.position
	p.mu.Unlock()

	p.emit(pos)
}

// fold moves elapsed play time into position. Caller holds p.mu.
func (p *ClockPlayer) fold() {
	now := p.now()
	if p.playing {
		p.position += now.Sub(p.anchor).Seconds() * p.rate
		if p.position > p.duration {
			p.position = p.duration
		}
	}
	p.anchor = now
}

// emit keeps only the latest position in the channel so a slow reader never
// blocks the clock
func (p *ClockPlayer) emit(pos float64) {
	for {
		select {
		case p.updates <- pos:
			return
		default:
		}
		select {
		case <-p.updates:
		default:
		}
	}
}

// Play starts the clock. At the end it stays paused and reports the end
// position again so listeners can see playback is over.
func (p *ClockPlayer) Play() {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return
	}
	if p.position >= p.duration {
		pos := p.position
		p.mu.Unlock()
		p.emit(pos)
		return
	}
	p.anchor = p.now()
	p.playing = true
	p.mu.Unlock()
}

// Pause stops the clock and reports the final position
func (p *ClockPlayer) Pause() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.fold()
	p.playing = false
	pos := p.position
	p.mu.Unlock()

	p.emit(pos)
}

// Seek jumps to t clamped to [0, duration]
func (p *ClockPlayer) Seek(t float64) {
	p.mu.Lock()
	p.fold()
	p.position = math.Max(0, math.Min(t, p.duration))
	pos := p.position
	p.mu.Unlock()

	p.emit(pos)
}

// Position returns the current position including unfolded play time
func (p *ClockPlayer) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fold()
	return p.position
}

// SetVolume stores the volume; there is no audio output to apply it to
func (p *ClockPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
}

// SetMuted stores the mute flag
func (p *ClockPlayer) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// SetRate changes the speed without moving the position
func (p *ClockPlayer) SetRate(rate float64) {
	if rate <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fold()
	p.rate = rate
}

// SetDuration changes where the clock stops
func (p *ClockPlayer) SetDuration(d float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fold()
	p.duration = math.Max(d, 0)
	if p.position > p.duration {
		p.position = p.duration
	}
}

// TimeUpdates delivers positions while playing and after seeks
func (p *ClockPlayer) TimeUpdates() <-chan float64 {
	return p.updates
}

// Playing reports whether the clock is running
func (p *ClockPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Volume returns the stored volume and mute flag
func (p *ClockPlayer) Volume() (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume, p.muted
}

// Rate returns the playback rate
func (p *ClockPlayer) Rate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate
}
