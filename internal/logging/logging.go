package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger: JSON to stderr, optionally duplicated to
// a file. The logger is installed as the slog default so package-level
// slog calls share it. The returned cleanup closes the log file and is
// safe to call when none was opened.
func New(level, file string) (*slog.Logger, func(), error) {
	var out io.Writer = os.Stderr
	cleanup := func() {}

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
		cleanup = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: Level(level)}))
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

// Level maps a config string to a slog level, defaulting to info.
func Level(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
