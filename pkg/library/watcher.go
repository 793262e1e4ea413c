package library

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/logging"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/metrics"
)

// DefaultDebounceInterval is the quiet period before a reload.
const DefaultDebounceInterval = 100 * time.Millisecond

// ReloadEvent describes a completed reload.
type ReloadEvent struct {
	// Library is the loaded library, nil when loading failed outright.
	Library *Library

	// Err is the load error, if any. The registry is only replaced when
	// Err is nil.
	Err error

	// Version is the registry version after the reload.
	Version string
}

// WatcherConfig contains configuration for the Watcher.
type WatcherConfig struct {
	// Path is the catalog file or directory to watch
	Path string

	// DebounceInterval is the time to wait after the last change before
	// reloading (default: 100ms)
	DebounceInterval time.Duration

	// OnReload is called after every reload, including the initial one.
	OnReload func(ReloadEvent)
}

// Watcher keeps a Registry in sync with catalog files.
type Watcher struct {
	config   WatcherConfig
	loader   *Loader
	registry *Registry
	logger   *slog.Logger
	metrics  *metrics.Collector

	mu      sync.Mutex
	running bool
	loaded  bool
	lastErr error
}

// NewWatcher creates a watcher. logger and collector may be nil.
func NewWatcher(config WatcherConfig, loader *Loader, registry *Registry, logger *slog.Logger, collector *metrics.Collector) (*Watcher, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("watch path is required")
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = DefaultDebounceInterval
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Watcher{
		config:   config,
		loader:   loader,
		registry: registry,
		logger:   logger,
		metrics:  collector,
	}, nil
}

// Reload loads the catalogs and replaces the registry contents. On a load
// error the registry keeps its previous formulas.
func (w *Watcher) Reload() error {
	lib, err := w.loader.Load(w.config.Path)
	if err == nil {
		err = w.registry.Replace(lib.ValidFormulas())
	}

	event := ReloadEvent{Library: lib, Err: err, Version: w.registry.Version()}

	w.mu.Lock()
	w.lastErr = err
	if err == nil {
		w.loaded = true
	}
	w.mu.Unlock()

	if err != nil {
		w.metrics.RecordLibraryReload(metrics.ResultError)
		w.logger.Warn("formula library reload failed",
			"path", w.config.Path,
			"error", err,
		)
	} else {
		w.metrics.RecordLibraryReload(metrics.ResultOK)
		for _, f := range lib.InvalidFormulas() {
			w.logger.Warn("formula rejected",
				"formula", f.Name,
				"file", f.SourceFile,
				"error", f.Err(),
			)
		}
		w.logger.Info("formula library reloaded",
			"path", w.config.Path,
			"formulas", w.registry.Count(),
			"rejected", len(lib.InvalidFormulas()),
			"version", event.Version,
		)
	}

	if w.config.OnReload != nil {
		w.config.OnReload(event)
	}
	return err
}

// HealthCheck reports an error until a reload has succeeded, and while the
// most recent reload is failing.
func (w *Watcher) HealthCheck(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.loaded {
		if w.lastErr != nil {
			return fmt.Errorf("formula library not loaded: %w", w.lastErr)
		}
		return fmt.Errorf("formula library not loaded")
	}
	if w.lastErr != nil {
		return fmt.Errorf("last reload failed: %w", w.lastErr)
	}
	return nil
}

// Run performs an initial reload and then reloads on every relevant file
// change until ctx is cancelled. A failed initial load is logged, not
// returned, so a broken catalog can be fixed while the watcher runs.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	// Stop is final, so each run gets its own debouncer.
	debounce := NewDebouncer(w.config.DebounceInterval)
	defer debounce.Stop()

	target, err := w.addPath(fsw, w.config.Path)
	if err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	_ = w.Reload()

	w.logger.Info("formula library watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("formula library watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.shouldProcess(event, target) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_, _ = w.addPath(fsw, event.Name)
				}
			}

			w.logger.Debug("catalog change detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			debounce.Trigger(func() {
				_ = w.Reload()
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warn("formula library watcher error", "error", err)
		}
	}
}

// addPath watches a directory tree, or the parent directory of a single
// file so that editors replacing the file are still seen. It returns the
// file to filter events on, or "" for a directory.
func (w *Watcher) addPath(fsw *fsnotify.Watcher, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		return filepath.Clean(path), fsw.Add(filepath.Dir(path))
	}

	return "", filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != path {
			return filepath.SkipDir
		}
		return fsw.Add(p)
	})
}

// shouldProcess determines if an event should trigger a reload.
func (w *Watcher) shouldProcess(event fsnotify.Event, target string) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	if target != "" {
		return filepath.Clean(event.Name) == target
	}

	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return true
		}
	}

	return w.loader.hasValidExtension(event.Name)
}

// Debouncer collects rapid events and runs the callback only after a quiet
// period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopped  bool
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback to run after the interval, replacing any
// pending callback.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		cb := d.callback
		d.callback = nil
		stopped := d.stopped
		d.mu.Unlock()

		if cb != nil && !stopped {
			cb()
		}
	})
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
