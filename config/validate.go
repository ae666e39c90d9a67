package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ValidationError reports an invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Message)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FFmpegPath) == "" {
		return &ValidationError{"ffmpeg_path", "must not be empty"}
	}
	if c.Workers < 1 || c.Workers > 16 {
		return &ValidationError{"workers", "must be between 1 and 16"}
	}
	if c.ChunkSize < 0 {
		return &ValidationError{"chunk_size", "must not be negative"}
	}
	switch c.Device {
	case "auto", "cpu", "cuda":
	default:
		return &ValidationError{"device", "must be one of auto, cpu, cuda"}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return &ValidationError{"log_level", fmt.Sprintf("is not a log level (%q)", c.LogLevel)}
	}
	return nil
}
