package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"typetrace/internal/logging"
)

// Load reads the configuration file at path, applying defaults for
// anything unset. An empty path means the default location; a missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg, err := loadFromFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile decodes the file into a default-initialized Config,
// choosing the decoder by extension (.toml default, .yaml/.yml, .json).
func loadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse json config: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse toml config: %w", err)
		}
	}
	return cfg, nil
}

// Loader loads a configuration file and watches it (plus the keysym
// override table it references) for changes.
type Loader struct {
	path     string
	config   *Config
	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	onChange []func(*Config)
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewLoader creates a loader for the given path (empty for the default
// location).
func NewLoader(path string) *Loader {
	if path == "" {
		path = ConfigPath()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{path: path, ctx: ctx, cancel: cancel}
}

// Load reads and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	cfg, err := Load(l.path)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.config = cfg
	l.mu.Unlock()
	return cfg, nil
}

// Config returns the most recently loaded configuration.
func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// OnChange registers a callback invoked after every successful reload.
func (l *Loader) OnChange(fn func(*Config)) {
	l.mu.Lock()
	l.onChange = append(l.onChange, fn)
	l.mu.Unlock()
}

// Watch starts watching the configuration file and the keysym override
// file for changes. Reload failures keep the previous configuration.
func (l *Loader) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	l.watcher = watcher

	// Watch directories, not files: editors replace files on save and
	// a file watch dies with the old inode.
	dirs := map[string]bool{filepath.Dir(l.path): true}
	if cfg := l.Config(); cfg != nil && cfg.Keysym.OverridesPath != "" {
		dirs[filepath.Dir(cfg.Keysym.OverridesPath)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logging.Warn("config watch failed", "dir", dir, "err", err)
		}
	}

	go l.watchLoop()
	return nil
}

func (l *Loader) watchLoop() {
	for {
		select {
		case <-l.ctx.Done():
			return
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if !l.relevant(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			l.reload()
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("config watcher error", "err", err)
		}
	}
}

func (l *Loader) relevant(name string) bool {
	if filepath.Clean(name) == filepath.Clean(l.path) {
		return true
	}
	cfg := l.Config()
	return cfg != nil && cfg.Keysym.OverridesPath != "" &&
		filepath.Clean(name) == filepath.Clean(cfg.Keysym.OverridesPath)
}

func (l *Loader) reload() {
	cfg, err := Load(l.path)
	if err != nil {
		logging.Warn("config reload failed, keeping previous", "err", err)
		return
	}

	l.mu.Lock()
	l.config = cfg
	callbacks := make([]func(*Config), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()

	logging.Info("configuration reloaded", "path", l.path)
	for _, fn := range callbacks {
		fn(cfg)
	}
}

// Close stops watching and releases resources.
func (l *Loader) Close() error {
	l.cancel()
	if l.watcher != nil {
		return l.watcher.Close()
	}
	return nil
}
