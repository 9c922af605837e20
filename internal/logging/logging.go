// Package logging opens the debug log. The TUI owns the terminal, so log
// output only ever goes to a file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Open returns a logger appending to path and a function closing the file.
// An empty path yields a logger that discards everything.
func Open(path, prefix string) (*log.Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return log.New(f, prefix, log.LstdFlags|log.Lshortfile), f.Close, nil
}

// Discard returns a logger that writes nowhere.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
