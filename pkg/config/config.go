// Package config provides the configuration structure for a conversion run
// and a YAML loader with environment variable substitution.
package config

import (
	"fmt"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/errors"
)

// Config describes one file-to-document conversion setup: which backend and
// format to read with, which column carries the text content, and which
// columns ride along as metadata.
type Config struct {
	// Backend selects the tabular engine ("native" or "columnar")
	Backend string `yaml:"backend" json:"backend"`

	// Format is the file format to read; must be in the backend's set
	Format string `yaml:"format" json:"format"`

	// ContentColumn holds each document's text payload
	ContentColumn string `yaml:"content_column" json:"content_column"`

	// MetaColumns are carried into each document's metadata bag, in order
	MetaColumns []string `yaml:"meta_columns" json:"meta_columns"`

	// IndexColumn optionally supplies the document ID
	IndexColumn string `yaml:"index_column" json:"index_column"`

	// ColumnsSubset optionally restricts frame-only reads to these columns
	ColumnsSubset []string `yaml:"columns_subset" json:"columns_subset"`

	// Read holds the per-format reader options
	Read backend.ReadOptions `yaml:"read" json:"read"`

	// Logging configures the structured logger
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level"`
	Encoding    string `yaml:"encoding" json:"encoding"`
	Development bool   `yaml:"development" json:"development"`
}

// New creates a config with defaults: the columnar backend, CSV format and
// info-level JSON logging.
func New() *Config {
	return &Config{
		Backend: "columnar",
		Format:  string(backend.FormatCSV),
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Validate checks the fields that every run needs. Format membership in the
// backend's set is checked by the ingestor, which knows the backend.
func (c *Config) Validate() error {
	if c.Backend == "" {
		return errors.New(errors.ErrorTypeConfig, "backend must not be empty")
	}
	if c.Format == "" {
		return errors.New(errors.ErrorTypeConfig, "format must not be empty")
	}
	if c.ContentColumn == "" {
		return errors.New(errors.ErrorTypeConfig, "content_column must not be empty")
	}
	for i, col := range c.MetaColumns {
		if col == "" {
			return errors.New(errors.ErrorTypeConfig,
				fmt.Sprintf("meta_columns[%d] must not be empty", i))
		}
	}
	return nil
}
