package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hy4ri/caltodo/internal/config"
)

func TestOpenStoreRecoversSilentlyFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Storage.Path = path
	var buf bytes.Buffer

	s, err := openStore(cfg, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("openStore() error: %v", err)
	}
	defer s.Close()

	if n := s.Len(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)); n != 0 {
		t.Errorf("corrupt file loaded %d tasks", n)
	}
	if !strings.Contains(buf.String(), "load failed") {
		t.Errorf("load failure not logged: %q", buf.String())
	}
}

func TestOpenStoreBackends(t *testing.T) {
	tests := []struct {
		backend string
		file    string
	}{
		{config.BackendJSON, "tasks.json"},
		{config.BackendSQLite, "tasks.db"},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Storage.Backend = tt.backend
			cfg.Storage.Path = filepath.Join(t.TempDir(), tt.file)

			s, err := openStore(cfg, log.New(&bytes.Buffer{}, "", 0))
			if err != nil {
				t.Fatalf("openStore() error: %v", err)
			}
			defer s.Close()

			date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
			if err := s.Add(date, "buy milk"); err != nil {
				t.Fatalf("Add() error: %v", err)
			}
			if _, err := os.Stat(cfg.Storage.Path); err != nil {
				t.Errorf("nothing written at %s: %v", cfg.Storage.Path, err)
			}
		})
	}
}
