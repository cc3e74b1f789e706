// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/contactbook/internal/contact"
)

// Config holds all contactbook configuration.
type Config struct {
	Book Book `yaml:"book"`
	Seed Seed `yaml:"seed"`
	Log  Log  `yaml:"log"`
}

// Book holds contact store settings.
type Book struct {
	Validate   bool   `yaml:"validate"`    // Reject empty name, phone or email
	TimeFormat string `yaml:"time_format"` // Go layout for creation timestamps
}

// Seed holds initial data settings.
type Seed struct {
	Enabled bool   `yaml:"enabled"` // Preload contacts at startup
	File    string `yaml:"file"`    // Local seed file; empty uses the embedded one
}

// Log holds logger settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`  // Empty discards log output
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Book: Book{
			Validate:   true,
			TimeFormat: contact.DefaultTimeFormat,
		},
		Seed: Seed{
			Enabled: true,
		},
		Log: Log{
			Level: "info",
		},
	}
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
	if c.Book.TimeFormat == "" {
		return errors.New("config: book.time_format cannot be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTBOOK_SEED, CONTACTBOOK_SEED_FILE,
// CONTACTBOOK_LOG_LEVEL, CONTACTBOOK_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTBOOK_SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTBOOK_SEED %q: %w", v, err)
		}
		c.Seed.Enabled = b
	}
	if v := os.Getenv("CONTACTBOOK_SEED_FILE"); v != "" {
		c.Seed.File = v
	}
	if v := os.Getenv("CONTACTBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CONTACTBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Book *rawBook `yaml:"book"`
	Seed *rawSeed `yaml:"seed"`
	Log  *rawLog  `yaml:"log"`
}

type rawBook struct {
	Validate   *bool   `yaml:"validate"`
	TimeFormat *string `yaml:"time_format"`
}

type rawSeed struct {
	Enabled *bool   `yaml:"enabled"`
	File    *string `yaml:"file"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
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
	if layer.Book != nil {
		if layer.Book.Validate != nil {
			c.Book.Validate = *layer.Book.Validate
		}
		if layer.Book.TimeFormat != nil {
			c.Book.TimeFormat = *layer.Book.TimeFormat
		}
	}
	if layer.Seed != nil {
		if layer.Seed.Enabled != nil {
			c.Seed.Enabled = *layer.Seed.Enabled
		}
		if layer.Seed.File != nil {
			c.Seed.File = *layer.Seed.File
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
