package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config is the process configuration read from the environment.
type Config struct {
	LogLevel  slog.Level
	LogFormat string
	// ScriptPath is the session script; empty reads stdin.
	ScriptPath string
	// HTTPAddr enables the diagnostics server when set.
	HTTPAddr string
	DevSeed  bool
}

func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	format := strings.ToLower(get("LOG_FORMAT"))
	switch format {
	case "":
		format = FormatJSON
	case FormatJSON, FormatText:
	default:
		return Config{}, fmt.Errorf("config: LOG_FORMAT must be json or text, got %q", format)
	}

	return Config{
		LogLevel:   parseLogLevel(get("LOG_LEVEL")),
		LogFormat:  format,
		ScriptPath: get("ATM_SCRIPT"),
		HTTPAddr:   get("ATM_HTTP_ADDR"),
		DevSeed:    parseBool(get("DEV_SEED")),
	}, nil
}

// parseLogLevel maps env values to slog.Level
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}
