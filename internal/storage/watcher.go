package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"minuteminder/internal/ui/preferences"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads the settings file when it changes on disk.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(preferences.Settings)
	logger   *zap.Logger
	pending  *time.Timer
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopped  bool
}

// WatchSettings starts watching configPath. onChange receives the reloaded
// settings with environment overrides applied; it runs on the watcher goroutine.
func WatchSettings(configPath string, debounce time.Duration, onChange func(preferences.Settings), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	// Editors often replace the file, so the directory is watched instead.
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	watcher := &Watcher{
		watcher:  fsWatcher,
		path:     filepath.Clean(configPath),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Stop ends watching and waits for the event loop to exit.
func (watcher *Watcher) Stop() {
	watcher.mu.Lock()
	if watcher.stopped {
		watcher.mu.Unlock()
		return
	}
	watcher.stopped = true
	if watcher.pending != nil {
		watcher.pending.Stop()
		watcher.pending = nil
	}
	watcher.mu.Unlock()

	close(watcher.stopCh)
	<-watcher.doneCh
	if err := watcher.watcher.Close(); err != nil {
		watcher.logger.Warn("close settings watcher", zap.Error(err))
	}
}

func (watcher *Watcher) run() {
	defer close(watcher.doneCh)

	for {
		select {
		case <-watcher.stopCh:
			return

		case event, ok := <-watcher.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != watcher.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			watcher.schedule()

		case err, ok := <-watcher.watcher.Errors:
			if !ok {
				return
			}
			watcher.logger.Warn("settings watcher error", zap.Error(err))
		}
	}
}

func (watcher *Watcher) schedule() {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	if watcher.stopped {
		return
	}
	if watcher.pending != nil {
		watcher.pending.Reset(watcher.debounce)
		return
	}
	watcher.pending = time.AfterFunc(watcher.debounce, watcher.reload)
}

func (watcher *Watcher) reload() {
	watcher.mu.Lock()
	if watcher.stopped {
		watcher.mu.Unlock()
		return
	}
	watcher.pending = nil
	watcher.mu.Unlock()

	settings, err := LoadSettingsFrom(watcher.path)
	if err != nil {
		watcher.logger.Warn("reload settings", zap.String("path", watcher.path), zap.Error(err))
		return
	}
	settings, err = ApplyEnv(settings)
	if err != nil {
		watcher.logger.Warn("reload settings", zap.Error(err))
	}
	watcher.logger.Info("settings reloaded", zap.String("path", watcher.path))
	if watcher.onChange != nil {
		watcher.onChange(settings)
	}
}
