// Package config handles configuration loading and validation for typetrace.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"typetrace/internal/logging"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete application configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Window configuration.
	Window WindowConfig `toml:"window" json:"window" yaml:"window"`

	// Export configuration for saving the event log.
	Export ExportConfig `toml:"export" json:"export" yaml:"export"`

	// History configuration for the session metadata archive.
	History HistoryConfig `toml:"history" json:"history" yaml:"history"`

	// Keysym configuration.
	Keysym KeysymConfig `toml:"keysym" json:"keysym" yaml:"keysym"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// WindowConfig holds the main window geometry.
type WindowConfig struct {
	// Width and Height are the initial window size in dp.
	Width  int `toml:"width" json:"width" yaml:"width"`
	Height int `toml:"height" json:"height" yaml:"height"`

	// MinWidth and MinHeight are the minimum window size in dp.
	MinWidth  int `toml:"min_width" json:"min_width" yaml:"min_width"`
	MinHeight int `toml:"min_height" json:"min_height" yaml:"min_height"`
}

// ExportConfig holds defaults for saving the event log.
type ExportConfig struct {
	// Dir is the directory suggested by the save dialog.
	Dir string `toml:"dir" json:"dir" yaml:"dir"`

	// Extension is the suggested file extension, including the dot.
	Extension string `toml:"extension" json:"extension" yaml:"extension"`
}

// HistoryConfig holds the opt-in session metadata archive settings.
// The archive stores timings and counts only, never key content.
type HistoryConfig struct {
	// Enabled turns the archive on. Off by default.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`

	// Path is the SQLite database location.
	Path string `toml:"path" json:"path" yaml:"path"`
}

// KeysymConfig holds key-name translation settings.
type KeysymConfig struct {
	// OverridesPath points at an optional JSON override table for key
	// names. Empty disables overrides.
	OverridesPath string `toml:"overrides_path" json:"overrides_path" yaml:"overrides_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is the output format: text or json.
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is the destination: stdout, stderr, or file.
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is the log file path when Output is "file".
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`
}

// TypetraceDir returns the application data directory (~/.typetrace).
func TypetraceDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".typetrace"
	}
	return filepath.Join(home, ".typetrace")
}

// ConfigPath returns the default configuration file path.
func ConfigPath() string {
	return filepath.Join(TypetraceDir(), "config.toml")
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Window: WindowConfig{
			Width:     720,
			Height:    480,
			MinWidth:  600,
			MinHeight: 400,
		},
		Export: ExportConfig{
			Dir:       defaultExportDir(),
			Extension: ".txt",
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    filepath.Join(TypetraceDir(), "history.db"),
		},
		Keysym: KeysymConfig{},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "stderr",
			FilePath: filepath.Join(TypetraceDir(), "typetrace.log"),
		},
	}
}

func defaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// ApplyEnvOverrides applies TYPETRACE_* environment variables on top of
// the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TYPETRACE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TYPETRACE_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("TYPETRACE_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("TYPETRACE_HISTORY"); v != "" {
		c.History.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("TYPETRACE_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("TYPETRACE_KEYSYM_OVERRIDES"); v != "" {
		c.Keysym.OverridesPath = v
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d: both dimensions must be positive",
			c.Window.Width, c.Window.Height))
	}
	if c.Window.MinWidth > c.Window.Width || c.Window.MinHeight > c.Window.Height {
		errs = append(errs, fmt.Errorf("window minimum size exceeds initial size"))
	}

	if c.Export.Extension != "" && !strings.HasPrefix(c.Export.Extension, ".") {
		errs = append(errs, fmt.Errorf("export extension %q must start with a dot", c.Export.Extension))
	}

	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, fmt.Errorf("history enabled without a database path"))
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "stderr", "file", "":
	default:
		errs = append(errs, fmt.Errorf("unknown log output %q", c.Logging.Output))
	}
	if strings.EqualFold(c.Logging.Output, "file") && c.Logging.FilePath == "" {
		errs = append(errs, fmt.Errorf("file log output without a file path"))
	}

	return errors.Join(errs...)
}

// LoggingSetup converts the logging section into a logging.Config.
// Validate must have passed.
func (c *Config) LoggingSetup() *logging.Config {
	level, _ := logging.ParseLevel(c.Logging.Level)
	format, _ := logging.ParseFormat(c.Logging.Format)
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Format = format
	if c.Logging.Output != "" {
		cfg.Output = c.Logging.Output
	}
	if c.Logging.FilePath != "" {
		cfg.FilePath = c.Logging.FilePath
	}
	return cfg
}
