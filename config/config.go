// Package config loads vcut's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "VCUT_CONFIG"

// Config holds user settings. Command-line flags override these values.
type Config struct {
	// Tools
	FFmpegPath string `yaml:"ffmpeg_path"`
	PythonPath string `yaml:"python_path"`

	// Rendering
	Workers  int  `yaml:"workers"`
	Reencode bool `yaml:"reencode"`

	// Transcription
	Model     string  `yaml:"model"`
	Language  string  `yaml:"language"`
	ChunkSize float64 `yaml:"chunk_size"`
	Device    string  `yaml:"device"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// History
	History bool   `yaml:"history"`
	DataDir string `yaml:"data_dir"`

	path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		FFmpegPath: "ffmpeg",
		PythonPath: "python3",
		Workers:    1,
		Reencode:   false,
		Model:      "quality",
		Language:   "",
		ChunkSize:  3.0,
		Device:     "auto",
		LogLevel:   "info",
		LogFile:    "",
		History:    true,
		DataDir:    defaultDataDir(),
	}
}

// DefaultPath returns $VCUT_CONFIG or ~/.config/vcut/config.yaml.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vcut.yaml"
	}
	return filepath.Join(dir, "vcut", "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "vcut")
	}
	return filepath.Join(home, ".local", "share", "vcut")
}

// Load reads the config at path over the defaults. An empty path means
// DefaultPath(); a missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.LogFile = expandHome(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Path returns the file the config was loaded from, or DefaultPath().
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// HistoryPath is the render history database file.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
