package follower

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// watchDebounce coalesces the event bursts editors and atomic renames emit.
const watchDebounce = 100 * time.Millisecond

// Watch reloads the tuning file whenever it changes and hands each valid
// result to apply. Invalid or torn updates keep the previous values and
// warn. The parent directory is watched, not the file, so atomic
// rename-into-place saves are seen. Blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, apply func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	base := filepath.Base(path)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				cfg, err := LoadFile(path)
				if err != nil {
					logrus.Warnf("ignoring config update: %v", err)
					return
				}
				logrus.Infof("tuning config reloaded from %s", path)
				apply(cfg)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.Warnf("config watcher: %v", err)
		}
	}
}
