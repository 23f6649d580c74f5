// Package config provides configuration loading and management for the
// verifyspec CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete verifyspec configuration
type Config struct {
	Specs   SpecsConfig   `yaml:"specs"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
	Watch   WatchConfig   `yaml:"watch"`
}

// SpecsConfig configures the specification tree
type SpecsConfig struct {
	// Dir is the root of the specification directory tree
	// (<dir>/<package>/**/*.yaml)
	Dir string `yaml:"dir"`
}

// MetricsConfig configures the metric registry
type MetricsConfig struct {
	// Dir is the directory of per-package metric files (<dir>/<package>.yaml)
	Dir string `yaml:"dir"`
}

// LogConfig configures logging output
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, error
	Level string `yaml:"level"`
}

// WatchConfig configures the watch subcommand
type WatchConfig struct {
	// DebounceDelay is how long to wait for more file changes before reloading
	DebounceDelay string `yaml:"debounce_delay"`
	// MetricsAddr is the listen address for the prometheus endpoint
	// (empty = no endpoint)
	MetricsAddr string `yaml:"metrics_addr"`
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Specs: SpecsConfig{
			Dir: "specs",
		},
		Metrics: MetricsConfig{
			Dir: "metrics",
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			DebounceDelay: "500ms",
			MetricsAddr:   "",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Specs.Dir == "" {
		return fmt.Errorf("specs.dir is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Watch.DebounceDelay != "" {
		if _, err := time.ParseDuration(c.Watch.DebounceDelay); err != nil {
			return fmt.Errorf("watch.debounce_delay is not a duration: %w", err)
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
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

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Specs.Dir != "" {
		c.Specs.Dir = other.Specs.Dir
	}
	if other.Metrics.Dir != "" {
		c.Metrics.Dir = other.Metrics.Dir
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if other.Watch.MetricsAddr != "" {
		c.Watch.MetricsAddr = other.Watch.MetricsAddr
	}
}
