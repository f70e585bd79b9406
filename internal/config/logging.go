package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process logger from the config. Logs go to stderr
// so recordings piped through stdout stay clean.
func NewLogger(c Config) *slog.Logger {
	level, _ := parseLevel(c.LogLevel) // Validate already checked it
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log_level %q", s)
	}
}
