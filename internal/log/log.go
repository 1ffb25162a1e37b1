// Package log provides JSON-lines structured logging for hstr diagnostics.
// The interactive screen owns the terminal, so logs go to a file.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: io.Discard)
	Output io.Writer

	// Level is the hstr level name: none, warn or debug (default: none)
	Level string
}

// New creates a JSON-lines structured logger:
//
//	{"ts":"2024-01-15T10:30:00Z","level":"WARN","msg":"deletion count mismatch","raw":2,"system":1}
//
// Level "none" discards everything.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}

	level, enabled := ParseLevel(cfg.Level)
	output := cfg.Output
	if output == nil || !enabled {
		output = io.Discard
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}

	return slog.New(slog.NewJSONHandler(output, opts))
}

// ParseLevel maps an hstr level name to a slog level. enabled is false for
// "none" and unknown names.
func ParseLevel(name string) (level slog.Level, enabled bool) {
	switch name {
	case "debug":
		return slog.LevelDebug, true
	case "warn", "warning":
		return slog.LevelWarn, true
	default:
		return slog.LevelError + 1, false
	}
}

// Open creates a logger appending to path. The returned closer must be
// called on exit. With level "none" no file is created.
func Open(path, level string) (*slog.Logger, io.Closer, error) {
	if _, enabled := ParseLevel(level); !enabled || path == "" {
		return New(nil), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // G304: path comes from config
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(&Config{Output: f, Level: level}), f, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(nil)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
