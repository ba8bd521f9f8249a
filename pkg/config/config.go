// Package config provides configuration loading and management for etsproj.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete etsproj configuration
type Config struct {
	Workdir string        `yaml:"workdir"`
	Parse   ParseConfig   `yaml:"parse"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
	Trace   TraceConfig   `yaml:"trace"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ParseConfig configures which documents are parsed
type ParseConfig struct {
	// ApplicationInfo also parses the application program documents
	ApplicationInfo bool `yaml:"application_info"`
}

// ExportConfig configures the project export
type ExportConfig struct {
	// Format is one of json, cbor or yaml
	Format string `yaml:"format"`
	// Indent pretty-prints text formats
	Indent bool `yaml:"indent"`
}

// LogConfig configures operational logging
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

// TraceConfig configures the build trace
type TraceConfig struct {
	// Path of the .etrace file (empty = no trace)
	Path string `yaml:"path"`
	// Elements records every element open and close
	Elements bool `yaml:"elements"`
}

// MetricsConfig configures the metrics endpoint
type MetricsConfig struct {
	// Addr is the listen address of /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is the quiet period before a rebuild
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Workdir: filepath.Join(os.TempDir(), "etsproj"),
		Parse: ParseConfig{
			ApplicationInfo: false,
		},
		Export: ExportConfig{
			Format: "json",
			Indent: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Workdir == "" {
		return fmt.Errorf("workdir is required")
	}
	switch c.Export.Format {
	case "json", "cbor", "yaml":
	default:
		return fmt.Errorf("export.format must be json, cbor or yaml, got %q", c.Export.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
}

// NewLogger creates the operational logger described by the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.MergeFile(path); err != nil {
		return nil, err
	}
	return config, nil
}

// MergeFile overlays the keys present in a YAML file onto c. Keys the file
// does not set keep their current value; a key set to false or "" still
// overrides. On error c is left unchanged.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	next := *c
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	*c = next
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
