// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all formexample configuration.
type Config struct {
	Log Log `yaml:"log"`
	UI  UI  `yaml:"ui"`
}

// Log holds settings for the submission log sink.
type Log struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format"` // "console" | "json"
	Output string `yaml:"output"` // "stderr" | "stdout" | file path
}

// UI holds terminal view settings.
type UI struct {
	AltScreen bool `yaml:"alt_screen"`
	ShowHelp  bool `yaml:"show_help"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: Log{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		UI: UI{
			ShowHelp: true,
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
		// valid
	default:
		return fmt.Errorf("config: log.format must be \"console\" or \"json\", got %q", c.Log.Format)
	}
	if c.Log.Output == "" {
		return errors.New("config: log.output cannot be empty")
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: FORMEXAMPLE_LOG_LEVEL, FORMEXAMPLE_LOG_FORMAT,
// FORMEXAMPLE_LOG_OUTPUT, FORMEXAMPLE_ALT_SCREEN.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("FORMEXAMPLE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FORMEXAMPLE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("FORMEXAMPLE_LOG_OUTPUT"); v != "" {
		c.Log.Output = v
	}
	if v := os.Getenv("FORMEXAMPLE_ALT_SCREEN"); v != "" {
		switch v {
		case "1", "true":
			c.UI.AltScreen = true
		case "0", "false":
			c.UI.AltScreen = false
		default:
			return fmt.Errorf("config: invalid FORMEXAMPLE_ALT_SCREEN %q", v)
		}
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Log *rawLog `yaml:"log"`
	UI  *rawUI  `yaml:"ui"`
}

type rawLog struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
	Output *string `yaml:"output"`
}

type rawUI struct {
	AltScreen *bool `yaml:"alt_screen"`
	ShowHelp  *bool `yaml:"show_help"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.Format != nil {
			c.Log.Format = *layer.Log.Format
		}
		if layer.Log.Output != nil {
			c.Log.Output = *layer.Log.Output
		}
	}
	if layer.UI != nil {
		if layer.UI.AltScreen != nil {
			c.UI.AltScreen = *layer.UI.AltScreen
		}
		if layer.UI.ShowHelp != nil {
			c.UI.ShowHelp = *layer.UI.ShowHelp
		}
	}
}
