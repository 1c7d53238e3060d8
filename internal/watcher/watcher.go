// Package watcher reports changes to catalog JSON files in a directory.
// Editors write a file several times per save, so events are coalesced
// into one batch after a quiet period.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// DirWatcher watches one directory for .json changes.
type DirWatcher struct {
	fw       *fsnotify.Watcher
	dir      string
	debounce time.Duration
}

// New starts watching dir. Call Run to receive batches and Close when done.
func New(dir string, debounce time.Duration) (*DirWatcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch dir: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(abs); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &DirWatcher{fw: fw, dir: abs, debounce: debounce}, nil
}

// Dir returns the absolute watched directory.
func (w *DirWatcher) Dir() string {
	return w.dir
}

// Run blocks until ctx ends, calling onChange with the sorted set of changed
// .json files once each burst of events settles.
func (w *DirWatcher) Run(ctx context.Context, onChange func(paths []string)) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "dir", w.dir, "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			slog.Debug("Catalog files changed", "paths", paths)
			onChange(paths)
		}
	}
}

// Close releases the underlying watcher.
func (w *DirWatcher) Close() error {
	return w.fw.Close()
}

func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
