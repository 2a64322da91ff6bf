// Package config loads gvalue.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given. A missing default file
// is not an error.
const DefaultFile = "gvalue.yaml"

// Config is the complete CLI configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Codec  CodecConfig  `yaml:"codec"`
	Ingest IngestConfig `yaml:"ingest"`
}

// StoreConfig locates the property store.
type StoreConfig struct {
	// Path is the SQLite database file.
	Path string `yaml:"path"`
}

// LogConfig sets the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// CodecConfig bounds entry decoding.
type CodecConfig struct {
	// MaxCollectionLen caps any decoded collection, list or property count.
	MaxCollectionLen int `yaml:"max_collection_len"`
}

// IngestConfig controls the bulk loader.
type IngestConfig struct {
	Delimiter    string `yaml:"delimiter"`
	NormalizeNFC bool   `yaml:"normalize_nfc"`
	SkipHeader   bool   `yaml:"skip_header"`
	BatchSize    int    `yaml:"batch_size"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Store:  StoreConfig{Path: "gvalue.db"},
		Log:    LogConfig{Level: "info"},
		Codec:  CodecConfig{MaxCollectionLen: 1 << 24},
		Ingest: IngestConfig{Delimiter: "|", NormalizeNFC: true, BatchSize: 1000},
	}
}

// Load reads the file at path over the defaults. An empty path reads
// DefaultFile if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Codec.MaxCollectionLen <= 0 {
		return fmt.Errorf("codec.max_collection_len must be positive")
	}
	if utf8.RuneCountInString(c.Ingest.Delimiter) != 1 {
		return fmt.Errorf("ingest.delimiter must be a single character, got %q", c.Ingest.Delimiter)
	}
	if c.Ingest.BatchSize <= 0 {
		return fmt.Errorf("ingest.batch_size must be positive")
	}
	return nil
}

// SlogLevel maps log.level to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
}

// Delimiter returns the ingest delimiter rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Ingest.Delimiter)
	return r
}
