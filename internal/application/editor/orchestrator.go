package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/core/playback"
	"github.com/penwyp/go-timeline-editor/internal/core/timeline"
	"github.com/penwyp/go-timeline-editor/internal/presentation/display"
	"github.com/penwyp/go-timeline-editor/internal/presentation/interaction"
	"github.com/penwyp/go-timeline-editor/internal/presentation/layout"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

const statusMessageTTL = 3 * time.Second

// Orchestrator coordinates all components of the interactive editor
type Orchestrator struct {
	opts *Options

	// Core components
	store        *timeline.Store
	dispatcher   *interaction.Dispatcher
	stateManager *StateManager

	// Playback
	player       MediaClock
	synchronizer *playback.Synchronizer

	// UI components
	display DisplayController
	input   InputHandler
	sizer   func() *layout.Sizer
	size    *layout.Sizer

	// dirty is signalled by store observers; capacity one coalesces bursts
	dirty chan struct{}
	quit  bool
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(opts *Options) (*Orchestrator, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	store, err := NewStore(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	store.InitializeWithVideo(opts.SourceURL, opts.Duration)

	player := playback.NewClockPlayer(opts.Duration, opts.Config.TickInterval)

	termDisplay := display.NewTerminalDisplay(&display.DisplayConfig{
		BasePixelsPerSecond: opts.Config.BasePixelsPerSecond,
		PixelsPerColumn:     opts.Config.PixelsPerColumn,
		HeaderWidth:         opts.Config.HeaderWidth,
		Color:               opts.Color,
	})

	return newOrchestrator(opts, store, player, termDisplay, nil, layout.DetectSizer), nil
}

func newOrchestrator(opts *Options, store *timeline.Store, player MediaClock, disp DisplayController, input InputHandler, sizer func() *layout.Sizer) *Orchestrator {
	cfg := opts.Config
	dispatcher := interaction.NewDispatcher(store, interaction.DispatchConfig{
		SeekStep:            cfg.SeekStep,
		SeekStepLarge:       cfg.SeekStepLarge,
		NudgeStep:           cfg.NudgeStep,
		SnapThresholdPx:     cfg.SnapThresholdPx,
		BasePixelsPerSecond: cfg.BasePixelsPerSecond,
		HeaderColumns:       cfg.HeaderWidth,
		PixelsPerColumn:     cfg.PixelsPerColumn,
	})

	return &Orchestrator{
		opts:         opts,
		store:        store,
		dispatcher:   dispatcher,
		stateManager: NewStateManager(statusMessageTTL),
		player:       player,
		synchronizer: playback.NewSynchronizer(store, player, cfg.SyncEpsilon),
		display:      disp,
		input:        input,
		sizer:        sizer,
		dirty:        make(chan struct{}, 1),
	}
}

// Store exposes the timeline store
func (o *Orchestrator) Store() *timeline.Store {
	return o.store
}

// Run starts the orchestrator main loop
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfof("Starting editor for %s", o.opts.SourceURL)

	// Phase 1: Initialize keyboard
	if o.input == nil {
		keyboard, err := interaction.NewKeyboardReader()
		if err != nil {
			return fmt.Errorf("failed to initialize keyboard: %w", err)
		}
		o.input = keyboard
	}
	defer o.input.Close()

	// Enter alternate screen mode
	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	// Phase 2: Start the media clock and keep it in sync with the store
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := o.player.Run(ctx); err != nil && ctx.Err() == nil {
			util.LogErrorf("Media clock stopped: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := o.synchronizer.Run(ctx); err != nil && ctx.Err() == nil {
			util.LogErrorf("Playback sync stopped: %v", err)
		}
	}()

	unsubscribe := o.store.Subscribe(func(model.EditorState) { o.markDirty() })
	defer unsubscribe()

	// Phase 3: Main event loop
	uiTicker := time.NewTicker(o.opts.Config.UIRefreshInterval())
	defer uiTicker.Stop()

	o.resize()
	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down editor")
			return nil

		case now := <-uiTicker.C:
			o.resize()
			o.stateManager.ExpireStatus(now)
			o.updateDisplay()

		case <-o.dirty:
			o.updateDisplay()

		case keyEvent, ok := <-o.input.Events():
			if !ok {
				return nil
			}
			if o.handleKeyboard(keyEvent) {
				util.LogInfo("Quit requested")
				return nil
			}
			o.updateDisplay()
		}
	}
}

func (o *Orchestrator) markDirty() {
	select {
	case o.dirty <- struct{}{}:
	default:
	}
}

// resize re-reads the terminal size. Returns true when it changed.
func (o *Orchestrator) resize() bool {
	size := o.sizer().Clamp()
	if o.size != nil && *o.size == *size {
		return false
	}
	o.size = size
	o.applyViewport()
	util.LogDebugf("Terminal size %dx%d", size.Width, size.Height)
	return true
}

// applyViewport tells the dispatcher where the time axis is on screen so
// clicks map to the same columns the renderer draws
func (o *Orchestrator) applyViewport() {
	state := o.stateManager.GetInteractionState()
	strategy := layout.GetLayoutStrategy(state.LayoutStyle)
	o.dispatcher.SetViewport(o.size.Width, strategy.ContentTop())
}

// updateDisplay updates the terminal display
func (o *Orchestrator) updateDisplay() {
	o.display.RenderWithState(o.store.State(), o.stateManager.GetInteractionState(), o.size)
}

// handleKeyboard handles keyboard events. Returns true to quit.
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	state := o.stateManager.GetInteractionState()

	// Handle confirm dialog inputs first
	if state.ConfirmDialog != nil {
		return o.handleDialog(state.ConfirmDialog, event)
	}

	if state.ShowHelp && event.Type == interaction.KeyEscape {
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = false
		})
		return false
	}

	action, ok := interaction.Resolve(event)
	if !ok {
		return false
	}

	// Only help and quit keys work while help is open
	if state.ShowHelp && action.Kind != interaction.ActionToggleHelp && action.Kind != interaction.ActionQuit {
		return false
	}

	if action.Kind == interaction.ActionQuit {
		return o.requestQuit()
	}

	result := o.dispatcher.Dispatch(action)
	if result.ToggleHelp {
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = !s.ShowHelp
		})
	}
	if result.ToggleLayout {
		style := o.stateManager.CycleLayout()
		o.applyViewport()
		o.stateManager.SetStatusMessage(layout.GetLayoutStrategy(style).GetName()+" layout", time.Now())
	}
	if result.Message != "" {
		o.stateManager.SetStatusMessage(result.Message, time.Now())
	}
	return false
}

func (o *Orchestrator) handleDialog(dialog *model.ConfirmDialog, event interaction.KeyEvent) bool {
	switch {
	case event.Type == interaction.KeyCtrl && event.Key == 'c':
		return true
	case event.Type == interaction.KeyChar && (event.Key == 'y' || event.Key == 'Y'):
		if dialog.OnConfirm != nil {
			dialog.OnConfirm()
		}
	case event.Type == interaction.KeyEscape,
		event.Type == interaction.KeyChar && (event.Key == 'n' || event.Key == 'N'):
		if dialog.OnCancel != nil {
			dialog.OnCancel()
		}
	default:
		// Ignore other keys when dialog is open
		return false
	}
	o.display.ClearForTransition()
	return o.quit
}

// requestQuit quits at once when there is nothing to lose, otherwise asks
// first since edits are kept in memory only
func (o *Orchestrator) requestQuit() bool {
	if !o.store.CanUndo() {
		return true
	}

	closeDialog := func() {
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ConfirmDialog = nil
		})
	}
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.ConfirmDialog = &model.ConfirmDialog{
			Title:   "Quit",
			Message: "The timeline has edits that are not saved anywhere. Quit anyway?",
			OnConfirm: func() {
				o.quit = true
				closeDialog()
			},
			OnCancel: closeDialog,
		}
	})
	return false
}
