package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Iron-max114/ai-laegens-bord/internal/capture"
)

// Config holds all runtime configuration for a journalload run.
type Config struct {
	DSN       string
	Dir       string // capture export directory
	OutFile   string // parquet export target
	LogFormat string // "text" or "json"
	Sources   []string `yaml:"sources"` // subset of the source catalog to import
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Sources []string `yaml:"sources"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.Sources = yc.Sources
	return c.validateSources()
}

// validateSources checks that every entry in Sources names a catalog source.
// An empty list defaults to the full catalog.
func (c *Config) validateSources() error {
	if len(c.Sources) == 0 {
		c.Sources = capture.SourceNames()
		return nil
	}
	for _, name := range c.Sources {
		if _, ok := capture.SourceByName(name); !ok {
			return fmt.Errorf("unknown source %q in config", name)
		}
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("--dir is required")
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	return nil
}

// ValidateWithDSN checks both the export directory and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or JOURNAL_DB_URL is required")
	}
	return nil
}

// ImportSource reports whether the named source is selected for this run.
func (c *Config) ImportSource(name string) bool {
	if len(c.Sources) == 0 {
		return true
	}
	for _, s := range c.Sources {
		if s == name {
			return true
		}
	}
	return false
}
