package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the manifest at path into store whenever it changes, until
// ctx is cancelled. A manifest that fails to parse leaves the previous
// catalog in place.
func Watch(ctx context.Context, path string, store *Store, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("unable to resolve manifest path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating fsnotify watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	// Watch the directory so editors that replace the file are still seen.
	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("error adding dir to fsnotify watcher: %w", err)
	}

	logger.Debug("Watching clip manifest", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			logger.Debug("fsnotify event", "file", event.Name, "event", event.Op)

			c, err := Load(abs)
			if err != nil {
				logger.Warn("Keeping previous clip manifest", "path", abs, "error", err)
				continue
			}
			// Writers truncate before writing; an empty read is usually that.
			if c.Len() == 0 {
				logger.Debug("Ignoring empty clip manifest", "path", abs)
				continue
			}
			store.Swap(c)
			logger.Info("Reloaded clip manifest", "path", abs, "clips", c.Len())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Debug("fsnotify error", "dir", dir, "error", err)
		}
	}
}
