// Package config loads xmindstruct settings from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "xmindstruct.yaml"

// Config holds all xmindstruct configuration.
type Config struct {
	// Extraction settings
	Extraction ExtractionConfig `yaml:"extraction"`

	// Report output
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ExtractionConfig configures the extractor.
type ExtractionConfig struct {
	Mode string `yaml:"mode"` // light, standard, verbose
}

// OutputConfig configures report serialization.
type OutputConfig struct {
	Format    string  `yaml:"format"`    // json, csv, xlsx, pdf; empty = from path
	Path      string  `yaml:"path"`      // empty = stdout
	Pretty    bool    `yaml:"pretty"`    // indent JSON
	Charset   string  `yaml:"charset"`   // CSV charset
	Landscape bool    `yaml:"landscape"` // PDF orientation
	FontSize  float64 `yaml:"font_size"` // PDF body font size
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			Mode: "standard",
		},
		Output: OutputConfig{
			Charset:  "utf-8",
			FontSize: 8,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Extraction.Mode {
	case "", "light", "standard", "verbose":
	default:
		return fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", c.Extraction.Mode)
	}
	switch c.Output.Format {
	case "", "json", "csv", "xlsx", "pdf":
	default:
		return fmt.Errorf("invalid format: %s (must be json, csv, xlsx, or pdf)", c.Output.Format)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logging.Format)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("XMINDSTRUCT_MODE"); v != "" {
		c.Extraction.Mode = v
	}
	if v := os.Getenv("XMINDSTRUCT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("XMINDSTRUCT_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("XMINDSTRUCT_CHARSET"); v != "" {
		c.Output.Charset = v
	}
	if v := os.Getenv("XMINDSTRUCT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
