// Package watch reports summary files as sessions finish writing them.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay gives a writer time to finish before a new file is read.
const settleDelay = 50 * time.Millisecond

// Event is a summary file that appeared in the watched directory.
type Event struct {
	Path    string
	Content string
}

// Watcher watches a directory for new summary files.
type Watcher struct {
	dir    string
	prefix string
	logger *slog.Logger
}

// New creates a watcher for files named <prefix>*.txt in dir.
func New(dir, prefix string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{dir: dir, prefix: prefix, logger: logger}
}

// Run calls onSummary for each summary file created in the directory until
// ctx is done. The directory is created if it does not exist yet.
func (w *Watcher) Run(ctx context.Context, onSummary func(Event)) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	seen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.matches(event.Name) || seen[event.Name] {
				continue
			}

			time.Sleep(settleDelay)
			data, err := os.ReadFile(event.Name)
			if err != nil {
				w.logger.Warn("failed to read summary", "path", event.Name, "error", err)
				continue
			}
			if len(data) == 0 {
				// Created but not yet written; wait for the write event
				continue
			}

			seen[event.Name] = true
			onSummary(Event{Path: event.Name, Content: string(data)})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "dir", w.dir, "error", err)
		}
	}
}

func (w *Watcher) matches(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, w.prefix) && filepath.Ext(name) == ".txt"
}
