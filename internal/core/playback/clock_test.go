package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time { return c.t }

func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestClock(duration float64) (*ClockPlayer, *manualClock) {
	clk := &manualClock{t: time.Unix(1700000000, 0)}
	p := NewClockPlayer(duration, 10*time.Millisecond)
	p.now = clk.now
	return p, clk
}

func drain(p *ClockPlayer) (float64, bool) {
	select {
	case v := <-p.TimeUpdates():
		return v, true
	default:
		return 0, false
	}
}

func TestClockPlayerAdvancesWhilePlaying(t *testing.T) {
	p, clk := newTestClock(10)

	p.Play()
	clk.advance(1500 * time.Millisecond)
	p.step()

	pos, ok := drain(p)
	require.True(t, ok)
	assert.InDelta(t, 1.5, pos, 1e-9)
	assert.InDelta(t, 1.5, p.Position(), 1e-9)
}

func TestClockPlayerPausedDoesNotMove(t *testing.T) {
	p, clk := newTestClock(10)

	clk.advance(time.Second)
	p.step()

	_, ok := drain(p)
	assert.False(t, ok)
	assert.Equal(t, 0.0, p.Position())
}

func TestClockPlayerRate(t *testing.T) {
	p, clk := newTestClock(10)
	p.Play()
	clk.advance(time.Second)
	p.SetRate(2)
	clk.advance(time.Second)

	assert.InDelta(t, 3.0, p.Position(), 1e-9)
	assert.Equal(t, 2.0, p.Rate())

	p.SetRate(0)
	assert.Equal(t, 2.0, p.Rate())
}

func TestClockPlayerStopsAtEnd(t *testing.T) {
	p, clk := newTestClock(2)
	p.Play()
	clk.advance(5 * time.Second)
	p.step()

	pos, ok := drain(p)
	require.True(t, ok)
	assert.Equal(t, 2.0, pos)
	assert.False(t, p.Playing())

	// Playing at the end reports the end again instead of running
	p.Play()
	pos, ok = drain(p)
	require.True(t, ok)
	assert.Equal(t, 2.0, pos)
	assert.False(t, p.Playing())
}

func TestClockPlayerSeekClampsAndEmits(t *testing.T) {
	p, _ := newTestClock(10)

	p.Seek(4)
	pos, ok := drain(p)
	require.True(t, ok)
	assert.Equal(t, 4.0, pos)

	p.Seek(-1)
	assert.Equal(t, 0.0, p.Position())
	p.Seek(99)
	assert.Equal(t, 10.0, p.Position())
}

func TestClockPlayerKeepsLatestUpdate(t *testing.T) {
	p, _ := newTestClock(10)

	p.Seek(1)
	p.Seek(2)
	p.Seek(3)

	pos, ok := drain(p)
	require.True(t, ok)
	assert.Equal(t, 3.0, pos)
	_, ok = drain(p)
	assert.False(t, ok)
}

func TestClockPlayerPauseFoldsPosition(t *testing.T) {
	p, clk := newTestClock(10)
	p.Play()
	clk.advance(750 * time.Millisecond)
	p.Pause()

	pos, ok := drain(p)
	require.True(t, ok)
	assert.InDelta(t, 0.75, pos, 1e-9)

	clk.advance(time.Second)
	assert.InDelta(t, 0.75, p.Position(), 1e-9)
}

func TestClockPlayerSetDurationClamps(t *testing.T) {
	p, _ := newTestClock(10)
	p.Seek(8)
	p.SetDuration(5)
	assert.Equal(t, 5.0, p.Position())
}

func TestClockPlayerVolume(t *testing.T) {
	p, _ := newTestClock(10)
	p.SetVolume(0.3)
	p.SetMuted(true)
	v, muted := p.Volume()
	assert.Equal(t, 0.3, v)
	assert.True(t, muted)
}

func TestClockPlayerRunStopsOnCancel(t *testing.T) {
	p := NewClockPlayer(10, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
