// Package watch re-plans automatically while input tables are being edited.
// It monitors the input directory for CSV changes and invokes the replan
// callback after a debounce delay, so a burst of spreadsheet saves produces
// one plan.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bioprocesslab/mediaprep/pkg/log"
)

// DefaultDebounce is the delay between the last file change and the replan.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a directory of CSV inputs and triggers replanning.
type Watcher struct {
	dir      string
	debounce time.Duration
	replan   func(ctx context.Context)
	logger   log.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher over dir. A non-positive debounce uses
// DefaultDebounce; a nil logger discards output.
func New(dir string, debounce time.Duration, replan func(ctx context.Context), logger log.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{dir: dir, debounce: debounce, replan: replan, logger: logger}
}

// Run plans once immediately, then blocks watching for changes until the
// context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return err
	}

	w.logger.Info("watching inputs", log.String("dir", w.dir))
	w.replan(ctx)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !isCSV(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("input changed", log.String("file", filepath.Base(event.Name)))
			w.Bump(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", log.Err(err))
		}
	}
}

// Bump (re)starts the debounce timer; the replan fires once the inputs have
// been quiet for the debounce delay.
func (w *Watcher) Bump(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.replan(ctx)
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
