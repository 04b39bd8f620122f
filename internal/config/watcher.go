package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts of file events into one reload.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads configuration when files under the loader's base path change.
type Watcher struct {
	loader    *Loader
	logger    *zap.Logger
	debounce  time.Duration
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)

	fs       *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher creates a watcher seeded with the current configuration.
func NewWatcher(loader *Loader, initial *Config, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		loader:   loader,
		logger:   logger.Named("config"),
		debounce: DefaultDebounce,
		config:   initial,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// WithDebounce overrides the reload delay.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Start begins watching the base path directory.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(w.loader.BasePath()); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.loader.BasePath(), err)
	}
	w.fs = fsw
	go w.watchLoop()

	w.logger.Info("Configuration hot reloading enabled",
		zap.String("path", w.loader.BasePath()),
		zap.String("environment", string(w.loader.Environment())),
	)
	return nil
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	defer w.fs.Close()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !isConfigFile(event.Name) {
				continue
			}
			w.logger.Debug("Configuration file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.Reload)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))

		case <-w.stopCh:
			return
		}
	}
}

// Reload loads the configuration again and notifies callbacks if it changed.
// An invalid configuration is logged and the previous one kept.
func (w *Watcher) Reload() {
	next, err := w.loader.Load()
	if err != nil {
		w.logger.Error("Invalid configuration after reload", zap.Error(err))
		return
	}

	w.mu.Lock()
	if configsEqual(w.config, next) {
		w.mu.Unlock()
		w.logger.Debug("Configuration unchanged after reload")
		return
	}
	w.config = next
	callbacks := make([]func(*Config), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for i, cb := range callbacks {
		w.invoke(i, cb, next)
	}
	w.logger.Info("Configuration reloaded",
		zap.Strings("sources", next.LoadedFrom),
		zap.Int("callbacks_notified", len(callbacks)),
	)
}

func (w *Watcher) invoke(idx int, cb func(*Config), cfg *Config) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Configuration callback panicked",
				zap.Int("callback_index", idx),
				zap.Any("panic", r),
			)
		}
	}()
	cb(cfg)
}

// OnChange registers a callback run after each effective reload.
func (w *Watcher) OnChange(callback func(*Config)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, callback)
	w.mu.Unlock()
}

// Current returns the latest valid configuration.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// Stop ends watching. It is safe to call more than once or before Start.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.fs != nil {
			<-w.done
		}
	})
}

func configsEqual(a, b *Config) bool {
	if a == nil || b == nil {
		return a == b
	}
	x, y := *a, *b
	x.LoadedFrom, y.LoadedFrom = nil, nil
	return reflect.DeepEqual(x, y)
}

func isConfigFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml", ".toml", ".json":
		return true
	}
	return false
}
