// Package logging builds the process logger. The logger is created once by the root
// command and handed to every service explicitly.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps a config level name to a slog.Level. Unknown names map to INFO.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenFile opens (or creates) the log file at path in append mode and returns a
// logger writing to it. debug forces DEBUG level regardless of levelName.
func OpenFile(path, levelName string, debug bool) (*slog.Logger, io.Closer, error) {
	level, ok := ParseLevel(levelName)
	if debug {
		level = slog.LevelDebug
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := New(f, level).With("app", "kontor")
	if !ok {
		logger.Warn("invalid log level, defaulting to info", "level", levelName)
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
