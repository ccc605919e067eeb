package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-indexes when geodata files under the root change. Bursts of
// filesystem events are merged: the pass starts only after the tree has been
// quiet for the debounce interval. Returns once the watcher is installed;
// the event loop runs until ctx is cancelled.
func (f *Finder) Watch(ctx context.Context, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}

	if err := watchTree(w, f.root); err != nil {
		w.Close()
		return fmt.Errorf("unable to watch %s: %w", f.root, err)
	}

	go func() {
		defer w.Close()

		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !f.eventNeedsReindex(ev, w) {
					continue
				}
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				f.log.Warn("watch error", "error", err)

			case <-timer.C:
				f.Refresh()
			}
		}
	}()

	return nil
}

func (f *Finder) eventNeedsReindex(ev fsnotify.Event, w *fsnotify.Watcher) bool {
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}

	// a created directory may already hold files; watch it and rescan
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := watchTree(w, ev.Name); err != nil {
				f.log.Warn("unable to watch new directory", "path", ev.Name, "error", err)
			}
			return true
		}
	}

	if !hasAnySuffix(name, f.vectorExts) && !hasAnySuffix(name, f.rasterExts) {
		return false
	}

	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// watchTree adds root and all its non-hidden subdirectories to the watcher.
func watchTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
