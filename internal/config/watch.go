package config

import (
	"StackWin/internal/paths"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay coalesces the burst of events editors produce on save.
const settleDelay = 150 * time.Millisecond

// Watch reloads the configuration whenever the config file changes and
// hands the result to onChange. It watches the parent directory so
// replace-on-save editors are seen. Watching stops when ctx is done.
func Watch(ctx context.Context, onChange func(AppConfig, error)) error {
	path := paths.GetConfigFilePath()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer w.Close()

		var (
			mu    sync.Mutex
			timer *time.Timer
		)
		reload := func() {
			conf, err := LoadAppConfig()
			onChange(conf, err)
		}

		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(settleDelay, reload)
				mu.Unlock()
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}
