package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShouldRedactTypedContent(t *testing.T) {
	redacted := []string{"char", "keysym", "text", "typed_text", "contents", "password"}
	for _, key := range redacted {
		if !shouldRedact(key) {
			t.Errorf("key %q should be redacted", key)
		}
	}

	clear := []string{"path", "events", "err", "component", "duration_ms"}
	for _, key := range clear {
		if shouldRedact(key) {
			t.Errorf("key %q should not be redacted", key)
		}
	}
}

func TestFileOutputRedactsKeyContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	l, err := New(&Config{
		Level:    LevelInfo,
		Format:   FormatJSON,
		Output:   "file",
		FilePath: path,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l.Info("captured", "keysym", "a", "events", 3)
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "[REDACTED]") {
		t.Error("keysym attribute should be redacted in output")
	}
	if strings.Contains(out, `"keysym":"a"`) {
		t.Error("raw keysym value leaked into log output")
	}
	if !strings.Contains(out, `"events":3`) {
		t.Error("non-sensitive attribute missing from output")
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"verbose", LevelInfo, false},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseLevel(%q) err = %v, ok = %v", tc.in, err, tc.ok)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Errorf("ParseFormat(empty) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}
