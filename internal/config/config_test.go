package config

import (
	"log/slog"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(envMap(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != FormatJSON {
		t.Fatalf("unexpected logging defaults: %+v", cfg)
	}
	if cfg.ScriptPath != "" || cfg.HTTPAddr != "" || cfg.DevSeed {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := load(envMap(map[string]string{
		"LOG_LEVEL":     "DEBUG",
		"LOG_FORMAT":    " Text ",
		"ATM_SCRIPT":    "session.atm",
		"ATM_HTTP_ADDR": ":9090",
		"DEV_SEED":      "yes",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != FormatText {
		t.Fatalf("logging: %+v", cfg)
	}
	if cfg.ScriptPath != "session.atm" || cfg.HTTPAddr != ":9090" || !cfg.DevSeed {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := load(envMap(map[string]string{"LOG_FORMAT": "xml"})); err == nil {
		t.Fatalf("expected error for LOG_FORMAT=xml")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"err":     slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q)=%v want %v", in, got, want)
		}
	}
}
