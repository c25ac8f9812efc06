package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// watchDebounce collapses the event bursts editors produce on save.
const watchDebounce = 500 * time.Millisecond

// Watch reports writes to the settings file until ctx is cancelled. Settings
// are loaded once per process, so onChange only informs the user that a
// restart is needed. The parent directory is watched because editors replace
// the file instead of writing it in place.
func Watch(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("settings watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()

		var pending *time.Timer
		defer func() {
			if pending != nil {
				pending.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if pending == nil {
					pending = time.AfterFunc(watchDebounce, onChange)
				} else {
					pending.Reset(watchDebounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.WithError(err).Warn("settings watcher error")
			}
		}
	}()

	return nil
}
