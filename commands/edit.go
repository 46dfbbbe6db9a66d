package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-timeline-editor/internal/application/editor"
	"github.com/penwyp/go-timeline-editor/internal/util"
	"github.com/spf13/cobra"
)

var (
	editDuration float64
	editNoColor  bool
)

var editCmd = &cobra.Command{
	Use:   "edit <source-url>",
	Short: "Open the interactive timeline editor",
	Long: `Opens a full-screen editor seeded with one video track holding the source.

The source is not decoded; --duration gives its length in seconds and a
simulated media clock drives playback. Press ? inside the editor for keys.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().Float64Var(&editDuration, "duration", 0,
		"Source duration in seconds (required)")
	editCmd.Flags().BoolVar(&editNoColor, "no-color", false,
		"Disable colors")
	_ = editCmd.MarkFlagRequired("duration")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the editor, so log to the file only
	if err := initLogging(cfg, false); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer util.CloseLogger()

	orchestrator, err := editor.NewOrchestrator(&editor.Options{
		SourceURL: args[0],
		Duration:  editDuration,
		Color:     useColor(editNoColor),
		Config:    cfg,
	})
	if err != nil {
		return err
	}

	// Set up signal handling
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx)
}
