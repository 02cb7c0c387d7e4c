package ledgerfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	lines := []string{
		"Withdrawal - Amount: $200.40, Updated Balance: $99.90",
		"Deposit - Amount: $40000.00, Updated Balance: $40099.90",
	}
	if err := Write(path, lines); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	want := lines[0] + "\n" + lines[1] + "\n"
	if string(raw) != want {
		t.Fatalf("file content=%q want %q", raw, want)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0] != lines[0] || got[1] != lines[1] {
		t.Fatalf("Read=%q", got)
	}
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.txt")
	if err := Write(path, []string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, []string{"d"}); err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "d\n" {
		t.Fatalf("file not truncated: %q", raw)
	}
	if err := Write(path, nil); err != nil {
		t.Fatal(err)
	}
	raw, _ = os.ReadFile(path)
	if len(raw) != 0 {
		t.Fatalf("empty ledger should produce empty file, got %q", raw)
	}
}

func TestWriteBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "ledger.txt")
	if err := Write(path, []string{"x"}); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
