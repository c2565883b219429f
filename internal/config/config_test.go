package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/incidfilter/internal/engine/batch"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, batch.DefaultBatchSize, cfg.Batching.BlockSize)
	assert.Equal(t, batch.DefaultBatchSize, cfg.Batching.PageSize)
	assert.Equal(t, 1, cfg.Batching.Concurrency)
	assert.Equal(t, DefaultTable, cfg.Selection.Table)
	assert.Equal(t, DefaultKeyColumns, cfg.Selection.KeyColumns)
	assert.Equal(t, "text", cfg.Output.DefaultFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvBlockSize, "")
	t.Setenv(EnvLogLevel, "")

	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `batching:
  block_size: 25
output:
  default_format: sql
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Batching.BlockSize)
	assert.Equal(t, batch.DefaultBatchSize, cfg.Batching.PageSize, "unset keys keep defaults")
	assert.Equal(t, "sql", cfg.Output.DefaultFormat)
	assert.Equal(t, "question", cfg.Output.Placeholder)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "")
	require.NoError(t, err)
	assert.Equal(t, New().Batching, cfg.Batching)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "batching: [")
	_, err := Load(path, "")
	assert.Error(t, err)
}

func TestLoad_ProjectOverlayAndEnv(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	writeFile(t, filepath.Join(home, ConfigFileName), `batching:
  block_size: 25
  page_size: 40
logging:
  level: warn
`)
	writeFile(t, filepath.Join(project, ProjectFileName), `batching:
  block_size: 10
`)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDB, "/data/incid.db")

	cfg, err := Load(filepath.Join(home, ConfigFileName), project)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Batching.BlockSize)
	assert.Equal(t, 0, cfg.Batching.PageSize, "overlay replaces the whole section")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/data/incid.db", cfg.Store.Path)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvBlockSize:   "7",
		EnvPageSize:    "9",
		EnvConcurrency: "4",
		EnvLogFormat:   "json",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := New()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, 7, cfg.Batching.BlockSize)
	assert.Equal(t, 9, cfg.Batching.PageSize)
	assert.Equal(t, 4, cfg.Batching.Concurrency)
	assert.Equal(t, "json", cfg.Logging.Format)

	env[EnvPageSize] = "lots"
	err := New().ApplyEnv(lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"block size zero", func(c *Config) { c.Batching.BlockSize = 0 }, batch.ErrInvalidBatchSize},
		{"page size too large", func(c *Config) { c.Batching.PageSize = batch.MaxBatchSize + 1 }, batch.ErrInvalidBatchSize},
		{"concurrency", func(c *Config) { c.Batching.Concurrency = 0 }, ErrInvalidConcurrency},
		{"format", func(c *Config) { c.Output.DefaultFormat = "xml" }, ErrInvalidFormat},
		{"placeholder", func(c *Config) { c.Output.Placeholder = "colon" }, ErrInvalidPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestStorePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	cfg := New()
	path, err := cfg.StorePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultStoreFileName), path)

	cfg.Store.Path = "/elsewhere/incid.db"
	path, err = cfg.StorePath()
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/incid.db", path)
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json"}
	assert.Equal(t, "stderr", lc.ToLoggingConfig().Output)

	lc.File = "/tmp/incidfilter.log"
	out := lc.ToLoggingConfig()
	assert.Equal(t, "file", out.Output)
	assert.Equal(t, "/tmp/incidfilter.log", out.File)
	assert.Equal(t, "debug", out.Level)
}
