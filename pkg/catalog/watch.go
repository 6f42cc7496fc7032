package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNothingToWatch is returned by Watch for catalogs without files.
var ErrNothingToWatch = errors.New("catalog has no files to watch")

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watch reloads the catalog whenever one of its files changes, then calls
// onReload with the reload result. It blocks until ctx is done.
//
// Parent directories are watched rather than the files, so saves that
// replace a file through a rename are still seen.
func (c *Catalog) Watch(ctx context.Context, debounce time.Duration, onReload func(error)) error {
	paths := c.Paths()
	if len(paths) == 0 {
		return ErrNothingToWatch
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	// Stopped until the first event. Stop discards any pending fire.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := watched[name]; !ok {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			c.log.V(1).Info("catalog file changed", "path", name, "op", event.Op.String())
			timer.Reset(debounce)

		case <-timer.C:
			err := c.Reload(ctx)
			if err != nil {
				c.log.Error(err, "reloading catalog")
			}
			if onReload != nil {
				onReload(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Error(err, "file watcher")
		}
	}
}
