package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Export.Format != "json" {
		t.Errorf("expected default format json, got %s", cfg.Export.Format)
	}
	if !cfg.Export.Indent {
		t.Error("expected indented export by default")
	}
	if cfg.Parse.ApplicationInfo {
		t.Error("expected application programs to be skipped by default")
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %s", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"cbor export", func(c *Config) { c.Export.Format = "cbor" }, false},
		{"missing workdir", func(c *Config) { c.Workdir = "" }, true},
		{"unknown export format", func(c *Config) { c.Export.Format = "xml" }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"unknown log format", func(c *Config) { c.Log.Format = "logfmt" }, true},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line logged at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON warn line, got %q", out)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
workdir: /var/tmp/ets
parse:
  application_info: true
export:
  format: yaml
trace:
  path: build.etrace
watch:
  debounce: 2s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Workdir != "/var/tmp/ets" {
		t.Errorf("workdir = %s", cfg.Workdir)
	}
	if !cfg.Parse.ApplicationInfo {
		t.Error("expected application_info true")
	}
	if cfg.Export.Format != "yaml" {
		t.Errorf("export.format = %s", cfg.Export.Format)
	}
	if cfg.Trace.Path != "build.etrace" {
		t.Errorf("trace.path = %s", cfg.Trace.Path)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("watch.debounce = %s", cfg.Watch.Debounce)
	}
	// Unset keys keep their defaults.
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %s", cfg.Log.Level)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("export: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Metrics.Addr = ":9100"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Metrics.Addr != ":9100" {
		t.Errorf("metrics.addr = %s", loaded.Metrics.Addr)
	}
}

func TestMergeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "etsproj.yaml")
	content := "export:\n  format: cbor\n  indent: false\ntrace:\n  elements: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Log.Level = "debug"
	if err := cfg.MergeFile(path); err != nil {
		t.Fatalf("MergeFile: %v", err)
	}

	if cfg.Export.Format != "cbor" {
		t.Errorf("export.format = %s", cfg.Export.Format)
	}
	if cfg.Export.Indent {
		t.Error("explicit false must override indent")
	}
	if !cfg.Trace.Elements {
		t.Error("expected trace.elements true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("unset key must keep its value, log.level = %s", cfg.Log.Level)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("watch.debounce = %v", cfg.Watch.Debounce)
	}
}

func TestMergeFileErrorLeavesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("export: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.MergeFile(path); err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.Export.Format != "json" {
		t.Errorf("config changed on error, export.format = %s", cfg.Export.Format)
	}
	if err := cfg.MergeFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}
