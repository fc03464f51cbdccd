package gen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period waited after a change before
// running a generation.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls run each time a file under paths is written, created,
// removed or renamed. Bursts of events closer than debounce are merged
// into a single call. Folders are watched recursively, including the ones
// created while watching. Errors returned by run are logged and do not
// stop the watch. Watch blocks until ctx is done.
func Watch(ctx context.Context, logger *slog.Logger, paths []string, debounce time.Duration, run func(context.Context) error) error {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()
	for _, p := range paths {
		if err := addTree(w, p); err != nil {
			return err
		}
	}
	logger.Info("watching for changes", "paths", paths)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(w, event.Name); err != nil {
						logger.Warn("cannot watch folder", "path", event.Name, "error", err)
					}
				}
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)
		case <-timer.C:
			if err := run(ctx); err != nil {
				logger.Error("generation failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if !errors.Is(err, fsnotify.ErrClosed) {
				logger.Warn("watch error", "error", err)
			}
		}
	}
}

// addTree watches path and, when it is a folder, all its sub-folders.
func addTree(w *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if !info.IsDir() {
		return w.Add(path)
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}
