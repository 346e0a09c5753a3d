// Package watcher re-runs category proposals when the Base's library
// changes on disk. Filesystem events are debounced, then throttled with
// a token bucket so a burst of imports triggers one clustering run, not
// hundreds.
package watcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/refbase-labs/refbase-cli/internal/core/ports/driving"
	"github.com/refbase-labs/refbase-cli/internal/logger"
)

// defaultDebounce is how long the watcher waits after the last event
// before triggering a run.
const defaultDebounce = 500 * time.Millisecond

// defaultMinInterval is the sustained floor between clustering runs.
const defaultMinInterval = 10 * time.Second

// Watcher triggers proposal runs from filesystem activity.
type Watcher struct {
	proposals driving.ProposalService
	settings  driving.SettingsService
	path      string
	debounce  time.Duration
	limiter   *rate.Limiter
}

// New creates a watcher over path, typically the Base's data directory.
func New(proposals driving.ProposalService, settings driving.SettingsService, path string) *Watcher {
	return &Watcher{
		proposals: proposals,
		settings:  settings,
		path:      path,
		debounce:  defaultDebounce,
		limiter:   rate.NewLimiter(rate.Every(defaultMinInterval), 1),
	}
}

// Run watches until the context is cancelled. Each relevant filesystem
// event arms a debounce timer; when it fires and the rate limiter
// permits, one proposal batch is generated and stored.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.path); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}
	logger.Info("Watching %s for library changes", w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Filesystem event: %s", event)
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		case <-timer.C:
			if err := w.trigger(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("Proposal run failed: %v", err)
			}
		}
	}
}

// relevant filters chmod noise and editor temp files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := strings.ToLower(event.Name)
	if strings.HasSuffix(name, ".tmp") || strings.HasSuffix(name, "~") {
		return false
	}
	// SQLite sidecar files churn constantly under WAL mode.
	if strings.HasSuffix(name, "-wal") || strings.HasSuffix(name, "-shm") {
		return false
	}
	return true
}

func (w *Watcher) trigger(ctx context.Context) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	opts := w.settings.Clustering().Options()
	batch, err := w.proposals.GenerateAndStore(ctx, opts)
	if err != nil {
		return err
	}
	logger.Info("Watch run stored batch %s with %d proposals", batch.BatchID, len(batch.Proposals))
	return nil
}
