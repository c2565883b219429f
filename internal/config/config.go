// Package config loads incidfilter settings from YAML files and environment
// variables.
//
// Precedence, lowest first: built-in defaults, $INCIDFILTER_HOME/config.yaml,
// the project overlay (.incidfilter.yaml in the working directory),
// INCIDFILTER_* environment variables, and finally CLI flags applied by the
// caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rshade/incidfilter/internal/engine/batch"
)

// Default values.
const (
	DefaultTable         = "incid_mm_polygons"
	DefaultKeyColumns    = "incid,toid,toid_fragment_id"
	DefaultPageColumn    = "incid"
	DefaultOutputFormat  = "text"
	DefaultPlaceholder   = "question"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultStoreFileName = "incid.db"
	ConfigFileName       = "config.yaml"
	ProjectFileName      = ".incidfilter.yaml"
)

// Environment variable names.
const (
	EnvHome        = "INCIDFILTER_HOME"
	EnvBlockSize   = "INCIDFILTER_BLOCK_SIZE"
	EnvPageSize    = "INCIDFILTER_PAGE_SIZE"
	EnvConcurrency = "INCIDFILTER_CONCURRENCY"
	EnvLogLevel    = "INCIDFILTER_LOG_LEVEL"
	EnvLogFormat   = "INCIDFILTER_LOG_FORMAT"
	EnvDB          = "INCIDFILTER_DB"
)

// Validation errors.
var (
	ErrInvalidFormat      = errors.New("output format must be text, sql, json or msgpack")
	ErrInvalidPlaceholder = errors.New("placeholder must be question or dollar")
	ErrInvalidConcurrency = errors.New("concurrency must be >= 1")
)

//nolint:gochecknoglobals // fixed lookup tables
var (
	validFormats      = map[string]bool{"text": true, "sql": true, "json": true, "msgpack": true}
	validPlaceholders = map[string]bool{"question": true, "dollar": true}
)

// Config is the full incidfilter configuration.
type Config struct {
	Batching  BatchingConfig  `yaml:"batching"`
	Selection SelectionConfig `yaml:"selection"`
	Store     StoreConfig     `yaml:"store"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// BatchingConfig sizes the filter batches.
type BatchingConfig struct {
	// BlockSize is the number of selected rows per multi-column batch.
	BlockSize int `yaml:"block_size"`
	// PageSize is the number of keys per single-column batch.
	PageSize int `yaml:"page_size"`
	// Concurrency bounds how many batches run against an executor at once.
	Concurrency int `yaml:"concurrency"`
}

// SelectionConfig names the GIS layer table and its key columns.
type SelectionConfig struct {
	Table      string `yaml:"table"`
	KeyColumns string `yaml:"key_columns"`
	PageColumn string `yaml:"page_column"`
}

// StoreConfig locates the record store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig controls how batches are printed.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Placeholder   string `yaml:"placeholder"`
}

// New returns a Config holding the built-in defaults.
func New() *Config {
	return &Config{
		Batching: BatchingConfig{
			BlockSize:   batch.DefaultBatchSize,
			PageSize:    batch.DefaultBatchSize,
			Concurrency: 1,
		},
		Selection: SelectionConfig{
			Table:      DefaultTable,
			KeyColumns: DefaultKeyColumns,
			PageColumn: DefaultPageColumn,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
			Placeholder:   DefaultPlaceholder,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds a Config from defaults, the config file at path (skipped when it
// does not exist), the project overlay in projectDir (skipped when projectDir
// is empty or holds none) and the environment.
func Load(path, projectDir string) (*Config, error) {
	cfg := New()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// no config file, defaults stand
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if projectDir != "" {
		overlay := filepath.Join(projectDir, ProjectFileName)
		if _, err := os.Stat(overlay); err == nil {
			if err := ShallowMergeYAML(cfg, overlay); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from INCIDFILTER_* variables found by lookupEnv.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	ints := []struct {
		name   string
		target *int
	}{
		{EnvBlockSize, &c.Batching.BlockSize},
		{EnvPageSize, &c.Batching.PageSize},
		{EnvConcurrency, &c.Batching.Concurrency},
	}
	for _, e := range ints {
		v, ok := lookupEnv(e.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.target = n
	}

	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvDB); ok && v != "" {
		c.Store.Path = v
	}
	return nil
}

// Validate checks the configuration for values the batchers or CLI reject.
func (c *Config) Validate() error {
	if err := batch.ValidateSize(c.Batching.BlockSize); err != nil {
		return fmt.Errorf("batching.block_size: %w", err)
	}
	if err := batch.ValidateSize(c.Batching.PageSize); err != nil {
		return fmt.Errorf("batching.page_size: %w", err)
	}
	if c.Batching.Concurrency < 1 {
		return fmt.Errorf("batching.concurrency: %w: got %d", ErrInvalidConcurrency, c.Batching.Concurrency)
	}
	if !validFormats[c.Output.DefaultFormat] {
		return fmt.Errorf("output.default_format: %w: got %q", ErrInvalidFormat, c.Output.DefaultFormat)
	}
	if !validPlaceholders[c.Output.Placeholder] {
		return fmt.Errorf("output.placeholder: %w: got %q", ErrInvalidPlaceholder, c.Output.Placeholder)
	}
	return nil
}

// StorePath returns the configured store path, defaulting to incid.db in the
// config directory.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultStoreFileName), nil
}
