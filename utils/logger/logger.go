// ABOUTME: This file provides the process-wide structured logger
// ABOUTME: Level comes from LOG_LEVEL; output is text on stderr
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the shared application logger. main() replaces it via Init;
// the init() fallback keeps library code and tests from hitting a nil
// logger before that happens.
var Logger *slog.Logger

func init() {
	if Logger == nil {
		Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))
	}
}

// Init configures the shared logger from the LOG_LEVEL environment
// variable (debug, info, warn, error; default info) and returns it.
func Init() *slog.Logger {
	level := slog.LevelInfo

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return Logger
}
