// Package config loads the tsvwriter CLI configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tsvwriter/emit"
)

// FileName is the name of the configuration file.
const FileName = ".tsvwriter.yaml"

// Config holds all tsvwriter configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
	// Schema is the path of a YAML metadata overlay, relative to the config file.
	Schema string `yaml:"schema"`
}

// OutputConfig holds configuration for row rendering.
type OutputConfig struct {
	RowDelimiter string `yaml:"row_delimiter"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultConfig returns configuration with defaults matching the library's.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			RowDelimiter: emit.DefaultRowDelimiter,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads the config file found by walking up from workDir, falling back to
// defaults when there is none.
func Load(workDir string) (*Config, error) {
	path, err := FindConfigFile(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	return LoadFromPath(path)
}

// LoadFromPath reads config from a specific path, merges it with defaults and
// validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if merged.Schema != "" && !filepath.IsAbs(merged.Schema) {
		merged.Schema = filepath.Join(filepath.Dir(path), merged.Schema)
	}

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigFile locates FileName by walking up from startDir.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// Merge merges loaded config with defaults. Values from loaded take precedence.
func Merge(loaded, defaults *Config) *Config {
	result := *defaults

	if loaded.Output.RowDelimiter != "" {
		result.Output.RowDelimiter = loaded.Output.RowDelimiter
	}
	if loaded.Log.Level != "" {
		result.Log.Level = loaded.Log.Level
	}
	if loaded.Schema != "" {
		result.Schema = loaded.Schema
	}

	return &result
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if cfg.Output.RowDelimiter == "" || strings.Contains(cfg.Output.RowDelimiter, "\n") {
		return fmt.Errorf("%w: row_delimiter must be non-empty and single-line, got %q",
			ErrInvalidConfig, cfg.Output.RowDelimiter)
	}

	if _, err := cfg.Level(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}

	return level, nil
}
