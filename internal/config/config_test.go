package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendJSON)
	}
	if cfg.UI.RolloverInterval != DefaultRolloverInterval {
		t.Errorf("rollover interval = %v", cfg.UI.RolloverInterval)
	}
	if !cfg.UI.ShowHints {
		t.Error("show_hints should default to true")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  backend: sqlite
  path: /tmp/elsewhere.db
ui:
  rollover_interval: 5s
  notify_rollover: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Storage.Path != "/tmp/elsewhere.db" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.UI.RolloverInterval != 5*time.Second {
		t.Errorf("rollover interval = %v, want 5s", cfg.UI.RolloverInterval)
	}
	if !cfg.UI.NotifyRollover {
		t.Error("notify_rollover not read")
	}
	if !cfg.UI.ShowHints {
		t.Error("unset show_hints lost its default")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "storage: [unclosed"},
		{"unknown backend", "storage:\n  backend: postgres\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.UI.RolloverInterval = 2 * time.Minute
	cfg.Log.File = "/tmp/caltodo.log"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.UI.RolloverInterval != 2*time.Minute || got.Log.File != "/tmp/caltodo.log" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestValidateFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Storage.Backend != BackendJSON || cfg.UI.RolloverInterval != DefaultRolloverInterval {
		t.Errorf("Validate() = %+v", cfg)
	}
}

func TestTaskPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg := DefaultConfig()
	p, err := cfg.TaskPath()
	if err != nil {
		t.Fatalf("TaskPath() error: %v", err)
	}
	if filepath.Base(p) != "tasks.json" {
		t.Errorf("json path = %s", p)
	}

	cfg.Storage.Backend = BackendSQLite
	p, _ = cfg.TaskPath()
	if filepath.Base(p) != "tasks.db" {
		t.Errorf("sqlite path = %s", p)
	}

	cfg.Storage.Path = "/explicit/tasks.json"
	p, _ = cfg.TaskPath()
	if p != "/explicit/tasks.json" {
		t.Errorf("explicit path = %s", p)
	}
}
