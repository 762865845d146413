// Package watch re-runs a diff whenever either input file changes on disk.
package watch

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval batches editor write bursts (temp file + rename + chmod)
// into a single re-run.
const debounceInterval = 150 * time.Millisecond

// Watcher monitors a set of files and invokes a callback when they settle
// after a change.
type Watcher struct {
	logger *log.Logger
}

// New creates a new Watcher
func New(logger *log.Logger) *Watcher {
	return &Watcher{logger: logger}
}

// Watch blocks, invoking onChange each time one of the files changes,
// until ctx is cancelled. onChange is also invoked once at startup so the
// initial state is shown. Watches are placed on the parent directories, not
// the files themselves, so that rename-based saves keep being observed.
func (w *Watcher) Watch(ctx context.Context, files []string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	if err := onChange(); err != nil {
		return err
	}

	var debounce *time.Timer
	for {
		var debounceC <-chan time.Time
		if debounce != nil {
			debounceC = debounce.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceInterval)
			} else {
				debounce.Reset(debounceInterval)
			}
		case err, ok := <-watcher.Errors:
			if !ok || err == nil {
				continue
			}
			w.logger.Printf("Warning: watcher error: %v", err)
		case <-debounceC:
			debounce = nil
			if err := onChange(); err != nil {
				w.logger.Printf("Warning: re-run failed: %v", err)
			}
		}
	}
}
