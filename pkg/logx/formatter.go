package logx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Fields is a map of structured log fields.
type Fields map[string]any

// LogEntry is the internal representation of a single log record.
type LogEntry struct {
	Level     Level
	Message   string
	Fields    Fields
	Error     error
	Timestamp time.Time
}

// Formatter renders a LogEntry into the bytes written to the output.
type Formatter interface {
	Format(entry *LogEntry) ([]byte, error)
}

// ─── Console ─────────────────────────────────────────────────────────────────

type consoleFormatter struct {
	config *Config
}

// NewConsoleFormatter creates a human-readable formatter.
func NewConsoleFormatter(config *Config) Formatter {
	return &consoleFormatter{config: config}
}

func (f *consoleFormatter) Format(entry *LogEntry) ([]byte, error) {
	var b strings.Builder

	if f.config.EnableTimestamp {
		b.WriteString(entry.Timestamp.Format(f.config.TimeFormat))
		b.WriteByte(' ')
	}

	fmt.Fprintf(&b, "[%s] %s", entry.Level, entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
		}
	}

	if entry.Error != nil {
		fmt.Fprintf(&b, " error=%v", entry.Error)
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// ─── JSON ────────────────────────────────────────────────────────────────────

type jsonFormatter struct {
	config *Config
}

// NewJSONFormatter creates a one-object-per-line JSON formatter.
func NewJSONFormatter(config *Config) Formatter {
	return &jsonFormatter{config: config}
}

func (f *jsonFormatter) Format(entry *LogEntry) ([]byte, error) {
	record := make(map[string]any, len(entry.Fields)+4)

	if f.config.EnableTimestamp {
		record["timestamp"] = entry.Timestamp.Format(f.config.TimeFormat)
	}
	record["level"] = entry.Level.String()
	record["message"] = entry.Message

	for k, v := range entry.Fields {
		record[k] = v
	}

	if entry.Error != nil {
		record["error"] = entry.Error.Error()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
