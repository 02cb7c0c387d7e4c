// Package ledgerfile reads and writes the plain-text ledger format: one
// transaction description per line, oldest first, no header or footer.
package ledgerfile

import (
	"bufio"
	"fmt"
	"os"
)

// Write creates or truncates path and writes lines to it, each terminated by
// a newline. The file is closed on every path.
func Write(path string, lines []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ledger file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("ledger file: %w", cerr)
		}
	}()
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("ledger file: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("ledger file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("ledger file: %w", err)
	}
	return nil
}

// Read returns the lines of a ledger file.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ledger file: %w", err)
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ledger file: %w", err)
	}
	return lines, nil
}
