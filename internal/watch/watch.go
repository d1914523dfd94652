// Package watch reports changes to a single file, grouping bursts of
// filesystem events into one notification.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called once per group of changes to the watched file.
type Handler func(ctx context.Context) error

// Watcher watches a single file. The parent directory is watched rather than
// the file itself so that editors replacing the file by rename are still
// observed.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	fs       *fsnotify.Watcher
}

// New creates a watcher for the file at path.
func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: invalid path: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{path: abs, debounce: debounce, logger: logger, fs: fs}, nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run calls fn after every group of writes to the file until ctx is done or
// fn returns an error. It returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.DebugContext(ctx, "file changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.WarnContext(ctx, "file watcher overflow", slog.Any("error", err))
				timer.Reset(w.debounce)
				continue
			}
			return fmt.Errorf("watch: %w", err)
		case <-timer.C:
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
