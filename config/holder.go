package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Holder is the process-wide access point for the current configuration.
// Reads lazily construct a defaulted Config (no CLI involved); Set and Reset
// replace or clear it, which tests use for isolation. All access is
// mutex-guarded so the holder can live inside a long-running host.
type Holder struct {
	mu       sync.Mutex
	config   *Config
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(*Config)
	stopCh   chan struct{}
}

// NewHolder creates an empty holder. No configuration is built until the
// first Current call.
func NewHolder(logger zerolog.Logger) *Holder {
	return &Holder{
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Current returns the current configuration, lazily constructing a
// defaulted one if none has been set.
func (h *Holder) Current() *Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.config == nil {
		h.config = New()
	}
	return h.config
}

// Set replaces the current configuration.
func (h *Holder) Set(cfg *Config) {
	h.mu.Lock()
	old := h.config
	h.config = cfg
	h.mu.Unlock()

	if old != nil && cfg != nil {
		h.logChanges(old, cfg)
	}
	for _, fn := range h.onChange {
		fn(cfg)
	}
}

// Reset clears the current configuration; the next Current call constructs
// a fresh defaulted one.
func (h *Holder) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.config = nil
}

// OnChange registers a callback invoked whenever Set replaces the config.
func (h *Holder) OnChange(fn func(*Config)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// ReloadFrom rebuilds a defaulted configuration, applies the config-file
// mapping at path, and swaps it in. The old configuration is kept on any
// failure.
func (h *Holder) ReloadFrom(path string) error {
	h.logger.Info().Str("path", path).Msg("reloading configuration")

	values, err := LoadFile(path)
	if err != nil {
		h.logger.Error().Err(err).Msg("config reload failed, keeping old config")
		return fmt.Errorf("reload config: %w", err)
	}

	cfg := New()
	if err := Apply(cfg, values); err != nil {
		h.logger.Error().Err(err).Msg("config reload failed, keeping old config")
		return fmt.Errorf("reload config: %w", err)
	}

	h.Set(cfg)
	h.logger.Info().Msg("configuration reloaded successfully")
	return nil
}

// WatchFile starts watching the config file for changes; every write or
// atomic save triggers ReloadFrom.
func (h *Holder) WatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	h.watcher = watcher

	// Watch the directory (more reliable for editors that do atomic saves)
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go h.watchLoop(abs)

	h.logger.Info().Str("path", abs).Msg("watching config file for changes")
	return nil
}

// Stop stops watching for file changes.
func (h *Holder) Stop() {
	close(h.stopCh)
	if h.watcher != nil {
		h.watcher.Close()
	}
}

func (h *Holder) watchLoop(path string) {
	filename := filepath.Base(path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("config file changed")

				if err := h.ReloadFrom(path); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) logChanges(old, new *Config) {
	if old.Output != new.Output {
		h.logger.Info().
			Str("old", old.Output).
			Str("new", new.Output).
			Msg("output directory changed")
	}

	if old.MinACL != new.MinACL {
		h.logger.Info().
			Str("old", old.MinACL.String()).
			Str("new", new.MinACL.String()).
			Msg("minimum access level changed")
	}

	if old.ModuleName != new.ModuleName {
		h.logger.Info().
			Str("old", old.ModuleName).
			Str("new", new.ModuleName).
			Msg("module name changed")
	}
}
