package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/penwyp/go-timeline-editor/internal/application/editor"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/presentation/formatter"
	"github.com/penwyp/go-timeline-editor/internal/script"
	"github.com/penwyp/go-timeline-editor/internal/util"
	"github.com/spf13/cobra"
)

var (
	applySource   string
	applyDuration float64
	applyOutput   string
	applyWatch    bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <script.jsonl>",
	Short: "Apply an edit script and print the resulting timeline",
	Long: `Runs a JSON-lines edit script against a fresh timeline, one operation per
line, and prints the result.

Each line names an op and its arguments, for example:
  {"op":"initialize","url":"intro.mp4","duration":42.5}
  {"op":"split","element":"clip","time":12,"ref":"tail"}
  {"op":"addTrack","kind":"text","ref":"captions"}
  {"op":"addElement","track":"captions","fields":{"content":"Hello","startTime":1}}

"ref" names the created track or element for later lines. initialize, or
--source with --duration, binds "video" and "clip" to the seeded track and
clip. With --watch the script is re-run whenever the file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&applySource, "source", "",
		"Seed the timeline with this source before the script runs")
	applyCmd.Flags().Float64Var(&applyDuration, "duration", 0,
		"Duration in seconds of --source")
	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "table",
		"Output format ("+strings.Join(formatter.Names, ", ")+")")
	applyCmd.Flags().BoolVarP(&applyWatch, "watch", "w", false,
		"Re-run the script when it changes")
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := initLogging(cfg, debug); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer util.CloseLogger()

	f, err := formatter.NewFormatter(applyOutput)
	if err != nil {
		return err
	}
	if applySource != "" && applyDuration <= 0 {
		return fmt.Errorf("--source needs a positive --duration")
	}

	path := expandPath(args[0])
	controller := editor.NewScriptController(path, cfg, applySource, applyDuration)
	out := cmd.OutOrStdout()

	if !applyWatch {
		st, _, err := controller.Run(cmd.Context())
		if err != nil {
			return err
		}
		return f.Format(out, st)
	}

	watcher, err := script.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("failed to watch script: %w", err)
	}

	// Set up signal handling
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return controller.Watch(ctx, watcher, func(st model.EditorState, res script.Result, err error) {
		stamp := time.Now().Format("15:04:05")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %v\n", stamp, err)
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "[%s] applied %d operations\n", stamp, res.Applied)
		if err := f.Format(out, st); err != nil {
			util.LogErrorf("Failed to print timeline: %v", err)
		}
	})
}
