package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/penwyp/go-timeline-editor/internal/config"
	"github.com/penwyp/go-timeline-editor/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Config file, defaults to ~/.go-timeline-editor/config.yaml
	configPath string

	rootCmd = &cobra.Command{
		Use:   "go-timeline-editor",
		Short: "Terminal timeline editor for video, audio and text tracks",
		Long: `go-timeline-editor edits a multi-track timeline in the terminal.

A session starts from one source video. Tracks of video, audio and text
elements can be split, trimmed, moved and removed while a media clock plays
the timeline back. Edits can also be scripted as JSON lines and applied
headless.

Examples:
  go-timeline-editor edit https://cdn.example.com/intro.mp4 --duration 42.5
  go-timeline-editor apply captions.jsonl --source intro.mp4 --duration 42.5
  go-timeline-editor apply captions.jsonl --output timeline --watch`,
		SilenceUsage: true,
	}
)

const defaultLogFile = "~/.go-timeline-editor/logs/app.log"

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default ~/.go-timeline-editor/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func loadConfig() (*config.EditorConfig, error) {
	path := configPath
	if path != "" {
		path = expandPath(path)
	}
	return config.Load(path)
}

// initLogging sends logs to the configured file. console adds stderr, which
// the full-screen editor must not use.
func initLogging(cfg *config.EditorConfig, console bool) error {
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = defaultLogFile
	}
	logFile = expandPath(logFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return err
	}

	return util.InitLogger(util.LoggerOptions{
		Level:   level,
		File:    logFile,
		Format:  util.LogFormat(cfg.LogFormat),
		Console: console,
	})
}

// useColor reports whether ANSI colors should be written to stdout
func useColor(disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
