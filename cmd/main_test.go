package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.txt")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExitCodes(t *testing.T) {
	cases := []struct {
		name   string
		format string
		script string
		want   int
	}{
		{"clean session", "text", writeScript(t, "register 1 1 Sam 10\nwithdraw 1 1 5\n"), exitOK},
		{"failed command", "text", writeScript(t, "register 1 1 Sam 10\nwithdraw 1 1 50\n"), exitCommands},
		{"missing script", "text", filepath.Join(t.TempDir(), "nope.txt"), exitError},
		{"bad log format", "xml", writeScript(t, ""), exitConfig},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("LOG_FORMAT", c.format)
			t.Setenv("LOG_LEVEL", "error")
			t.Setenv("ATM_SCRIPT", c.script)
			t.Setenv("ATM_HTTP_ADDR", "")
			t.Setenv("DEV_SEED", "")
			if got := run(); got != c.want {
				t.Fatalf("run()=%d want %d", got, c.want)
			}
		})
	}
}
