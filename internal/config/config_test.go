package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Window.Width != 720 || cfg.Window.Height != 480 {
		t.Errorf("default window size = %dx%d, want 720x480", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Export.Extension != ".txt" {
		t.Errorf("default export extension = %q, want .txt", cfg.Export.Extension)
	}
	if cfg.History.Enabled {
		t.Error("history must be off by default")
	}
	if !strings.Contains(cfg.History.Path, ".typetrace") {
		t.Errorf("history path should contain .typetrace: %s", cfg.History.Path)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	path := ConfigPath()
	if !strings.HasSuffix(path, "config.toml") {
		t.Errorf("expected path ending with config.toml, got %s", path)
	}
	if !strings.Contains(path, ".typetrace") {
		t.Errorf("config path should contain .typetrace: %s", path)
	}
}

func TestLoadNonexistentYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.Width != 720 {
		t.Errorf("expected default width 720, got %d", cfg.Window.Width)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = 1

[window]
width = 1024
height = 600
min_width = 600
min_height = 400

[export]
dir = "/tmp/exports"
extension = ".log"

[history]
enabled = true
path = "/tmp/history.db"

[logging]
level = "debug"
format = "json"
output = "stderr"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.Width != 1024 {
		t.Errorf("width = %d, want 1024", cfg.Window.Width)
	}
	if cfg.Export.Dir != "/tmp/exports" || cfg.Export.Extension != ".log" {
		t.Errorf("export = %+v", cfg.Export)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/history.db" {
		t.Errorf("history = %+v", cfg.History)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
window:
  width: 800
  height: 500
  min_width: 600
  min_height: 400
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.Width != 800 {
		t.Errorf("width = %d, want 800", cfg.Window.Width)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Logging.Level)
	}
	// Unset sections keep defaults.
	if cfg.Export.Extension != ".txt" {
		t.Errorf("extension = %q, want default .txt", cfg.Export.Extension)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TYPETRACE_LOG_LEVEL", "debug")
	t.Setenv("TYPETRACE_HISTORY", "true")
	t.Setenv("TYPETRACE_HISTORY_PATH", "/tmp/h.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/h.db" {
		t.Errorf("history = %+v", cfg.History)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"min exceeds size", func(c *Config) { c.Window.MinWidth = 10000 }},
		{"extension without dot", func(c *Config) { c.Export.Extension = "txt" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad log output", func(c *Config) { c.Logging.Output = "syslog" }},
		{"file output without path", func(c *Config) {
			c.Logging.Output = "file"
			c.Logging.FilePath = ""
		}},
		{"history without path", func(c *Config) {
			c.History.Enabled = true
			c.History.Path = ""
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoaderReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[window]\nwidth = 700\nheight = 480\nmin_width = 600\nmin_height = 400\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(path)
	defer l.Close()

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.Width != 700 {
		t.Fatalf("width = %d, want 700", cfg.Window.Width)
	}

	reloaded := make(chan *Config, 1)
	l.OnChange(func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	if err := l.Watch(); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("[window]\nwidth = 900\nheight = 480\nmin_width = 600\nmin_height = 400\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if c.Window.Width != 900 {
			t.Errorf("reloaded width = %d, want 900", c.Window.Width)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestLoaderKeepsPreviousOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	os.WriteFile(path, []byte("[window]\nwidth = 700\nheight = 480\nmin_width = 600\nmin_height = 400\n"), 0644)

	l := NewLoader(path)
	defer l.Close()
	if _, err := l.Load(); err != nil {
		t.Fatal(err)
	}

	// Corrupt the file and trigger a reload directly.
	os.WriteFile(path, []byte("[window]\nwidth = 0\n"), 0644)
	l.reload()

	if got := l.Config().Window.Width; got != 700 {
		t.Errorf("config after failed reload: width = %d, want previous 700", got)
	}
}
