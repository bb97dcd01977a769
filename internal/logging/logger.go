// Package logging configures the diagnostics logger. The TUI owns the
// terminal, so log output goes to .weekendly/logs/weekendly.log where users
// can inspect failures after the screen is gone.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New opens (or creates) the log file and returns a configured logger plus a
// closer for the underlying file handle.
func New(logPath, level string) (zerolog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: open log file: %w", err)
	}
	logger := zerolog.New(file).
		Level(parseLevel(level)).
		With().
		Str("app", "weekendly").
		Timestamp().
		Logger()
	return logger, file.Close, nil
}

func parseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
