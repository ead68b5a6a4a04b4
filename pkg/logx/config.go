package logx

import (
	"io"
	"os"
	"strings"
	"time"
)

// Format represents the output format.
type Format string

const (
	// FormatConsole outputs human-readable console logs (default).
	FormatConsole Format = "console"
	// FormatJSON outputs one JSON object per line.
	FormatJSON Format = "json"
)

// Config holds the logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level

	// Format is the output format.
	Format Format

	// EnableTimestamp adds a timestamp to every entry.
	EnableTimestamp bool

	// TimeFormat is the timestamp layout (defaults to RFC3339).
	TimeFormat string

	// Output is where log lines are written (defaults to os.Stdout).
	Output io.Writer
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:           LevelInfo,
		Format:          FormatConsole,
		EnableTimestamp: true,
		TimeFormat:      time.RFC3339,
		Output:          os.Stdout,
	}
}

// LoadFromEnv builds a Config from LOG_LEVEL and LOG_FORMAT.
func LoadFromEnv() *Config {
	config := DefaultConfig()

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = ParseLevel(level)
	}

	if format := os.Getenv("LOG_FORMAT"); format != "" {
		if strings.EqualFold(format, string(FormatJSON)) {
			config.Format = FormatJSON
		}
	}

	return config
}
