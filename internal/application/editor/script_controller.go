package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/penwyp/go-timeline-editor/internal/config"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/script"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// ScriptController runs an edit script headless against a fresh store
type ScriptController struct {
	path   string
	config *config.EditorConfig

	// Optional seed applied before the script
	sourceURL string
	duration  float64

	// Prevent concurrent runs
	runMutex sync.Mutex
}

// NewScriptController creates a controller for the script at path. When
// duration is positive the store is seeded with sourceURL first.
func NewScriptController(path string, cfg *config.EditorConfig, sourceURL string, duration float64) *ScriptController {
	if cfg == nil {
		cfg = config.Default()
	}
	return &ScriptController{
		path:      path,
		config:    cfg,
		sourceURL: sourceURL,
		duration:  duration,
	}
}

// Run parses the script and applies it to a new store
func (sc *ScriptController) Run(ctx context.Context) (model.EditorState, script.Result, error) {
	sc.runMutex.Lock()
	defer sc.runMutex.Unlock()

	ops, err := script.ParseFile(sc.path)
	if err != nil {
		return model.EditorState{}, script.Result{}, err
	}

	store, err := NewStore(sc.config)
	if err != nil {
		return model.EditorState{}, script.Result{}, fmt.Errorf("failed to create store: %w", err)
	}
	if sc.duration > 0 {
		store.InitializeWithVideo(sc.sourceURL, sc.duration)
	}

	runner := script.NewRunner()
	if sc.duration > 0 {
		// Let scripts address the seeded clip without an initialize line
		runner.Seed(store.State())
	}

	res, err := runner.Apply(ctx, store, ops)
	if err != nil {
		return store.State(), res, fmt.Errorf("%s: %w", sc.path, err)
	}
	util.LogInfof("Applied %s: %d operations, %d changed the timeline", sc.path, res.Applied, res.Changed)
	return store.State(), res, nil
}

// Watch re-runs the script whenever its content changes and reports every
// outcome to fn, starting with an initial run. It returns when ctx is done.
func (sc *ScriptController) Watch(ctx context.Context, monitor FileMonitor, fn func(model.EditorState, script.Result, error)) error {
	defer monitor.Close()

	st, res, err := sc.Run(ctx)
	fn(st, res, err)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-monitor.Events():
			if !ok {
				return nil
			}
			util.LogDebugf("Script changed: %s (%s)", event.Path, event.Operation)
			st, res, err := sc.Run(ctx)
			fn(st, res, err)
		}
	}
}
