package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel converts DEBUG, INFO, WARN or ERROR (in any case) to a slog level.
// An empty string means INFO.
func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToUpper(value) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", value)
	}
}

// SetLogLevel installs a text logger with the level from LOG_LEVEL.
func SetLogLevel() {
	envLevel := os.Getenv("LOG_LEVEL")

	level, err := ParseLogLevel(envLevel)
	if err != nil {
		slog.Error("Invalid log level", "level", envLevel)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
