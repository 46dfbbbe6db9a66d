package script

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-timeline-editor/internal/core/model"
	"github.com/penwyp/go-timeline-editor/internal/util"
)

// Watcher reports content changes of a single script file. The parent
// directory is watched so editors that replace the file on save are seen.
type Watcher struct {
	watcher     *fsnotify.Watcher
	path        string
	fingerprint string
	events      chan model.FileEvent
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
	}

	w := &Watcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan model.FileEvent, 16),
	}
	w.fingerprint, _ = util.CalculateFileFingerprint(abs)

	go w.processEvents()

	return w, nil
}

func (w *Watcher) processEvents() {
	defer close(w.events)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			fp, err := util.CalculateFileFingerprint(w.path)
			if err != nil {
				// The file may be mid-replace; the following Create carries it
				util.LogDebugf("Skip fingerprint of %s: %v", w.path, err)
				continue
			}
			if fp == w.fingerprint {
				continue
			}
			w.fingerprint = fp

			select {
			case w.events <- model.FileEvent{Path: w.path, Operation: event.Op.String()}:
			default:
				util.LogDebug("Dropping script change event, consumer is behind")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events is closed after Close
func (w *Watcher) Events() <-chan model.FileEvent {
	return w.events
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
