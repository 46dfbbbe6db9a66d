package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TIMELINE"
)

// ErrInvalidConfig is returned when a value cannot be repaired by defaults
var ErrInvalidConfig = errors.New("invalid config")

// EditorConfig contains configuration for the editor and the apply command
type EditorConfig struct {
	// Geometry
	BasePixelsPerSecond float64 `mapstructure:"base_pixels_per_second"`
	PixelsPerColumn     float64 `mapstructure:"pixels_per_column"`
	HeaderWidth         int     `mapstructure:"header_width"`

	// Zoom
	ZoomStep float64 `mapstructure:"zoom_step"`
	ZoomMin  float64 `mapstructure:"zoom_min"`
	ZoomMax  float64 `mapstructure:"zoom_max"`

	// Keyboard steps in seconds
	SeekStep      float64 `mapstructure:"seek_step"`
	SeekStepLarge float64 `mapstructure:"seek_step_large"`
	NudgeStep     float64 `mapstructure:"nudge_step"`

	SnapThresholdPx float64 `mapstructure:"snap_threshold_px"`

	// Playback
	SyncEpsilon   float64       `mapstructure:"sync_epsilon"`
	TickInterval  time.Duration `mapstructure:"tick_interval"`
	UIRefreshRate float64       `mapstructure:"ui_refresh_rate"`

	HistoryLimit int `mapstructure:"history_limit"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFile   string `mapstructure:"log_file"`
	LogFormat string `mapstructure:"log_format"`
}

// DefaultDir returns ~/.go-timeline-editor
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".go-timeline-editor"
	}
	return filepath.Join(home, ".go-timeline-editor")
}

// Load reads the config file at path, or config.yaml in DefaultDir when path
// is empty. A missing default file is not an error. Environment variables
// prefixed with TIMELINE_ override file values.
func Load(path string) (*EditorConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &EditorConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_pixels_per_second", 50.0)
	v.SetDefault("pixels_per_column", 10.0)
	v.SetDefault("header_width", 14)
	v.SetDefault("zoom_step", 2.0)
	v.SetDefault("zoom_min", 0.1)
	v.SetDefault("zoom_max", 10.0)
	v.SetDefault("seek_step", 1.0)
	v.SetDefault("seek_step_large", 5.0)
	v.SetDefault("nudge_step", 0.1)
	v.SetDefault("snap_threshold_px", 10.0)
	v.SetDefault("sync_epsilon", 0.25)
	v.SetDefault("tick_interval", "50ms")
	v.SetDefault("ui_refresh_rate", 10.0)
	v.SetDefault("history_limit", 100)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_format", "text")
}

// Default returns the built-in configuration without reading any file
func Default() *EditorConfig {
	v := viper.New()
	setDefaults(v)
	cfg := &EditorConfig{}
	_ = v.Unmarshal(cfg)
	_ = cfg.Validate()
	return cfg
}

// Validate fills zero values with defaults and rejects contradictory values
func (c *EditorConfig) Validate() error {
	if c.BasePixelsPerSecond <= 0 {
		c.BasePixelsPerSecond = 50
	}
	if c.PixelsPerColumn <= 0 {
		c.PixelsPerColumn = 10
	}
	if c.HeaderWidth <= 0 {
		c.HeaderWidth = 14
	}
	if c.ZoomStep == 0 {
		c.ZoomStep = 2
	}
	if c.ZoomMin == 0 {
		c.ZoomMin = 0.1
	}
	if c.ZoomMax == 0 {
		c.ZoomMax = 10
	}
	if c.SeekStep <= 0 {
		c.SeekStep = 1
	}
	if c.SeekStepLarge <= 0 {
		c.SeekStepLarge = 5
	}
	if c.NudgeStep <= 0 {
		c.NudgeStep = 0.1
	}
	if c.SnapThresholdPx < 0 {
		c.SnapThresholdPx = 0
	}
	if c.SyncEpsilon <= 0 {
		c.SyncEpsilon = 0.25
	}
	if c.TickInterval <= 0 {
		c.TickInterval = 50 * time.Millisecond
	}
	if c.UIRefreshRate <= 0 {
		c.UIRefreshRate = 10
	}
	if c.HistoryLimit < 0 {
		c.HistoryLimit = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}

	if c.ZoomStep <= 1 {
		return fmt.Errorf("%w: zoom_step must be greater than 1, got %g", ErrInvalidConfig, c.ZoomStep)
	}
	if c.ZoomMin <= 0 || c.ZoomMin > c.ZoomMax {
		return fmt.Errorf("%w: zoom range [%g, %g]", ErrInvalidConfig, c.ZoomMin, c.ZoomMax)
	}
	return nil
}

// UIRefreshInterval converts the refresh rate to a ticker period
func (c *EditorConfig) UIRefreshInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.UIRefreshRate)
}
