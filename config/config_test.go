package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "python3", cfg.PythonPath)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.Reencode)
	assert.Equal(t, "quality", cfg.Model)
	assert.Equal(t, 3.0, cfg.ChunkSize)
	assert.True(t, cfg.History)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Workers, cfg.Workers)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 4\nreencode: true\nmodel: fast\ndata_dir: /srv/vcut\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Reencode)
	assert.Equal(t, "fast", cfg.Model)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, filepath.Join("/srv/vcut", "history.db"), cfg.HistoryPath())
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "quality", cfg.Model)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wokers: 4\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 0\n"), 0644))

	_, err := Load(path)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "workers", vErr.Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Config)
	}{
		{"ffmpeg_path", func(c *Config) { c.FFmpegPath = " " }},
		{"workers", func(c *Config) { c.Workers = 17 }},
		{"chunk_size", func(c *Config) { c.ChunkSize = -1 }},
		{"device", func(c *Config) { c.Device = "tpu" }},
		{"log_level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			var vErr *ValidationError
			require.True(t, errors.As(cfg.Validate(), &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Workers = 8
	cfg.Language = "de"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Workers)
	assert.Equal(t, "de", loaded.Language)
}

func TestDefaultPathFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "/etc/vcut.yaml")
	assert.Equal(t, "/etc/vcut.yaml", DefaultPath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs/vcut.log"), expandHome("~/logs/vcut.log"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
