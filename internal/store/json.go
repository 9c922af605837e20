package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONFile persists tasks as a single JSON document keyed by date.
type JSONFile struct {
	path string
}

// NewJSONFile returns a backend writing to path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the file location.
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the file. A missing file is an empty mapping.
func (f *JSONFile) Load() (map[string][]Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string][]Task{}, nil
		}
		return nil, err
	}
	return decodeTasks(data)
}

// Save replaces the file contents via a temporary file and rename.
func (f *JSONFile) Save(tasks map[string][]Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	return atomicWriteFile(f.path, data, 0o644)
}

// Close implements Backend.
func (f *JSONFile) Close() error {
	return nil
}

// decodeTasks parses the document leniently: entries are coerced field by
// field instead of being rejected. Only a document whose shape is not
// {"date": [...]} is an error.
func decodeTasks(data []byte) (map[string][]Task, error) {
	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed task file: %w", err)
	}
	out := make(map[string][]Task, len(raw))
	for date, items := range raw {
		bucket := make([]Task, 0, len(items))
		for _, item := range items {
			bucket = append(bucket, coerceTask(item))
		}
		out[date] = bucket
	}
	return out, nil
}

func coerceTask(item json.RawMessage) Task {
	var fields map[string]any
	if err := json.Unmarshal(item, &fields); err != nil {
		return Task{}
	}
	var t Task
	switch v := fields["text"].(type) {
	case nil:
	case string:
		t.Text = v
	default:
		t.Text = fmt.Sprint(v)
	}
	t.Done = truthy(fields["done"])
	return t
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return false
	}
}

func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tasks-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
