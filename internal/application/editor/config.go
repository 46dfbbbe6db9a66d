package editor

import (
	"errors"
	"fmt"

	"github.com/penwyp/go-timeline-editor/internal/config"
	"github.com/penwyp/go-timeline-editor/internal/core/timeline"
)

var (
	// ErrNoSource is returned when the editor is started without a media URL
	ErrNoSource = errors.New("no source url")
	// ErrInvalidDuration is returned for a non-positive source duration
	ErrInvalidDuration = errors.New("source duration must be positive")
)

// Options configures one interactive editing session
type Options struct {
	SourceURL string
	Duration  float64
	Color     bool

	Config *config.EditorConfig
}

// Validate checks the options and fills defaults
func (o *Options) Validate() error {
	if o.SourceURL == "" {
		return ErrNoSource
	}
	if o.Duration <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidDuration, o.Duration)
	}
	if o.Config == nil {
		o.Config = config.Default()
	}
	return o.Config.Validate()
}

// NewStore builds a timeline store from editor settings
func NewStore(cfg *config.EditorConfig) (*timeline.Store, error) {
	return timeline.NewStore(timeline.Config{
		ZoomStep:     cfg.ZoomStep,
		ZoomMin:      cfg.ZoomMin,
		ZoomMax:      cfg.ZoomMax,
		HistoryLimit: cfg.HistoryLimit,
	})
}
