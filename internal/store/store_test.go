package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func newJSONStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := New(NewJSONFile(path), nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	return s, path
}

func readFile(t *testing.T, path string) map[string][]Task {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var got map[string][]Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return got
}

func TestKey(t *testing.T) {
	if got := Key(day(2024, time.March, 5)); got != "2024-03-05" {
		t.Errorf("Key() = %q, want 2024-03-05", got)
	}
}

func TestTasksCreatesEmptyBucket(t *testing.T) {
	s, _ := newJSONStore(t)
	got := s.Tasks(day(2030, time.January, 1))
	if got == nil || len(got) != 0 {
		t.Fatalf("Tasks() on unseen date = %#v, want empty non-nil slice", got)
	}
}

func TestAddPersists(t *testing.T) {
	s, path := newJSONStore(t)
	d := day(2024, time.March, 15)

	if err := s.Add(d, "buy milk"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	want := []Task{{Text: "buy milk", Done: false}}
	if got := s.Tasks(d); !reflect.DeepEqual(got, want) {
		t.Errorf("Tasks() = %#v, want %#v", got, want)
	}

	onDisk := readFile(t, path)
	if !reflect.DeepEqual(onDisk, map[string][]Task{"2024-03-15": want}) {
		t.Errorf("file = %#v", onDisk)
	}

	raw, _ := os.ReadFile(path)
	var generic map[string][]map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("decode: %v", err)
	}
	entry := generic["2024-03-15"][0]
	if entry["text"] != "buy milk" || entry["done"] != false {
		t.Errorf("entry fields = %#v, want text and done keys", entry)
	}
}

func TestAddIgnoresBlankText(t *testing.T) {
	s, path := newJSONStore(t)
	d := day(2024, time.March, 15)

	for _, text := range []string{"", "   ", "\t\n"} {
		if err := s.Add(d, text); err != nil {
			t.Fatalf("Add(%q) error: %v", text, err)
		}
	}
	if n := s.Len(d); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("blank adds should not write the file, stat err = %v", err)
	}
}

func TestAddTrimsText(t *testing.T) {
	s, _ := newJSONStore(t)
	d := day(2024, time.March, 15)
	_ = s.Add(d, "  call mom  ")
	if got := s.Tasks(d)[0].Text; got != "call mom" {
		t.Errorf("Text = %q, want %q", got, "call mom")
	}
}

func TestToggleThenDeletePrunesKey(t *testing.T) {
	s, path := newJSONStore(t)
	d := day(2024, time.March, 15)
	_ = s.Add(d, "buy milk")

	if err := s.Toggle(d, 0); err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}
	if !s.Tasks(d)[0].Done {
		t.Fatal("Toggle() did not set done")
	}
	if got := readFile(t, path)["2024-03-15"][0].Done; !got {
		t.Error("toggle was not persisted")
	}

	if err := s.Delete(d, 0); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if n := s.Len(d); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
	onDisk := readFile(t, path)
	if _, ok := onDisk["2024-03-15"]; ok {
		t.Errorf("empty bucket persisted: %#v", onDisk)
	}
}

func TestOperationsOnEmptyBucketAreNoops(t *testing.T) {
	s, path := newJSONStore(t)
	d := day(2024, time.March, 15)

	if err := s.Toggle(d, 0); err != nil {
		t.Errorf("Toggle() error: %v", err)
	}
	if err := s.Delete(d, 0); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := s.Toggle(d, -1); err != nil {
		t.Errorf("Toggle(-1) error: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("no-op operations should not write, stat err = %v", err)
	}
}

func TestMutationsPreserveOrder(t *testing.T) {
	s, _ := newJSONStore(t)
	d := day(2024, time.June, 1)
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		_ = s.Add(d, text)
	}

	_ = s.Toggle(d, 2)
	_ = s.Delete(d, 1)
	_ = s.Toggle(d, 0)
	_ = s.Delete(d, 3)

	want := []Task{
		{Text: "a", Done: true},
		{Text: "c", Done: true},
		{Text: "d"},
	}
	if got := s.Tasks(d); !reflect.DeepEqual(got, want) {
		t.Errorf("Tasks() = %#v, want %#v", got, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, path := newJSONStore(t)
	d1 := day(2024, time.March, 15)
	d2 := day(2024, time.December, 31)
	_ = s.Add(d1, "one")
	_ = s.Add(d1, "two")
	_ = s.Toggle(d1, 1)
	_ = s.Add(d2, "new year prep")
	_ = s.Tasks(day(2025, time.January, 1)) // empty bucket, must be pruned

	if err := s.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := New(NewJSONFile(path), nil)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := map[string][]Task{
		"2024-03-15": {{Text: "one"}, {Text: "two", Done: true}},
		"2024-12-31": {{Text: "new year prep"}},
	}
	if !reflect.DeepEqual(reloaded.tasks, want) {
		t.Errorf("reloaded = %#v, want %#v", reloaded.tasks, want)
	}
}

func TestLoadRecoversFromMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		want    map[string][]Task
	}{
		{
			name:    "not json",
			content: "{{{ nope",
			wantErr: true,
			want:    map[string][]Task{},
		},
		{
			name:    "top level array",
			content: `[1, 2, 3]`,
			wantErr: true,
			want:    map[string][]Task{},
		},
		{
			name:    "bucket is an object",
			content: `{"2024-01-01": {"text": "x"}}`,
			wantErr: true,
			want:    map[string][]Task{},
		},
		{
			name:    "missing fields default",
			content: `{"2024-01-01": [{"text": "x"}, {"done": true}, {}]}`,
			want: map[string][]Task{
				"2024-01-01": {{Text: "x"}, {Done: true}, {}},
			},
		},
		{
			name:    "odd field types are coerced",
			content: `{"2024-01-01": [{"text": 42, "done": 1}, "junk", {"text": "y", "done": ""}]}`,
			want: map[string][]Task{
				"2024-01-01": {{Text: "42", Done: true}, {}, {Text: "y"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			s := New(NewJSONFile(path), nil)
			err := s.Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(s.tasks, tt.want) {
				t.Errorf("tasks = %#v, want %#v", s.tasks, tt.want)
			}
		})
	}
}

type failingBackend struct {
	saves int
}

func (f *failingBackend) Load() (map[string][]Task, error) { return nil, nil }
func (f *failingBackend) Save(map[string][]Task) error {
	f.saves++
	return errors.New("disk full")
}
func (f *failingBackend) Close() error { return nil }

func TestWriteFailureKeepsMutation(t *testing.T) {
	fb := &failingBackend{}
	s := New(fb, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	d := day(2024, time.March, 15)

	if err := s.Add(d, "survive"); err == nil {
		t.Fatal("Add() should report the write failure")
	}
	if got := s.Tasks(d); len(got) != 1 || got[0].Text != "survive" {
		t.Errorf("mutation rolled back: %#v", got)
	}
	if fb.saves != 1 {
		t.Errorf("saves = %d, want 1", fb.saves)
	}
}

func TestOpenCount(t *testing.T) {
	s, _ := newJSONStore(t)
	d := day(2024, time.March, 15)
	_ = s.Add(d, "a")
	_ = s.Add(d, "b")
	_ = s.Toggle(d, 0)
	if got := s.OpenCount(d); got != 1 {
		t.Errorf("OpenCount() = %d, want 1", got)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	backend, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	s := New(backend, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	d := day(2024, time.March, 15)
	_ = s.Add(d, "first")
	_ = s.Add(d, "second")
	_ = s.Add(d, "third")
	_ = s.Toggle(d, 1)
	_ = s.Delete(d, 0)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	backend, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer backend.Close()
	reloaded := New(backend, nil)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []Task{{Text: "second", Done: true}, {Text: "third"}}
	if got := reloaded.Tasks(d); !reflect.DeepEqual(got, want) {
		t.Errorf("Tasks() = %#v, want %#v", got, want)
	}
}
