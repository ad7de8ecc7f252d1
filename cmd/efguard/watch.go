package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 300 * time.Millisecond

// watchAndRun runs once, then again after every burst of file system
// events under target, until ctx is cancelled. Each run is a complete pass.
func watchAndRun(ctx context.Context, target string, run func(context.Context) (bool, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer watcher.Close()

	root := target
	if st, statErr := os.Stat(target); statErr == nil && !st.IsDir() {
		root = filepath.Dir(target)
	}
	if err := addWatchRecursive(watcher, root); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	trigger := func() {
		if _, runErr := run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			logger.WithError(runErr).Error("watch run failed")
		}
	}
	trigger()

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if st, statErr := os.Stat(ev.Name); statErr == nil && st.IsDir() && !skipWatched(st.Name()) {
					_ = addWatchRecursive(watcher, ev.Name)
				}
			}
			logger.WithField("event", ev.String()).Debug("change detected")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("watch error")
		}
	}
}

func addWatchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && skipWatched(info.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func skipWatched(name string) bool {
	switch name {
	case "bin", "obj", "node_modules":
		return true
	}
	return len(name) > 1 && name[0] == '.'
}
