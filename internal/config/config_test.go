package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gvalue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "gvalue.db", cfg.Store.Path)
	assert.Equal(t, 1<<24, cfg.Codec.MaxCollectionLen)
	assert.Equal(t, '|', cfg.Delimiter())
	assert.True(t, cfg.Ingest.NormalizeNFC)
	assert.False(t, cfg.Ingest.SkipHeader)
	assert.Equal(t, 1000, cfg.Ingest.BatchSize)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
store:
  path: /tmp/graph.db
log:
  level: debug
ingest:
  delimiter: ","
  skip_header: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/graph.db", cfg.Store.Path)
	assert.Equal(t, ',', cfg.Delimiter())
	assert.True(t, cfg.Ingest.SkipHeader)
	// untouched fields keep their defaults
	assert.True(t, cfg.Ingest.NormalizeNFC)
	assert.Equal(t, 1000, cfg.Ingest.BatchSize)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "store: [",
		"bad level":     "log:\n  level: loud\n",
		"bad delimiter": "ingest:\n  delimiter: \"||\"\n",
		"bad batch":     "ingest:\n  batch_size: 0\n",
		"bad max len":   "codec:\n  max_collection_len: -1\n",
		"empty store":   "store:\n  path: \"\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}
