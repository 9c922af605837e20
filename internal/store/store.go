// Package store keeps tasks grouped by calendar date and persists them.
package store

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// DateLayout is the canonical date key format.
const DateLayout = "2006-01-02"

// Task is a single todo item.
type Task struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Backend reads and writes the whole date -> tasks mapping.
type Backend interface {
	Load() (map[string][]Task, error)
	Save(map[string][]Task) error
	Close() error
}

// Store is the in-memory task mapping. Every mutation is written through to
// the backend before returning.
type Store struct {
	backend Backend
	tasks   map[string][]Task
	logger  *log.Logger
}

// New creates a Store on top of backend. Call Load before use.
func New(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		backend: backend,
		tasks:   make(map[string][]Task),
		logger:  logger,
	}
}

// Key returns the storage key for the calendar date of t.
func Key(t time.Time) string {
	return t.Format(DateLayout)
}

// Load replaces the in-memory mapping with the backend contents.
// Unreadable or malformed data leaves an empty store; the error is logged and
// returned so callers may report it, but it is never fatal.
func (s *Store) Load() error {
	loaded, err := s.backend.Load()
	if err != nil {
		s.tasks = make(map[string][]Task)
		s.logger.Printf("load failed, starting empty: %v", err)
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	if loaded == nil {
		loaded = make(map[string][]Task)
	}
	s.tasks = loaded
	s.logger.Printf("loaded %d dates", len(loaded))
	return nil
}

// Save writes every non-empty bucket to the backend.
func (s *Store) Save() error {
	out := make(map[string][]Task, len(s.tasks))
	for k, v := range s.tasks {
		if len(v) == 0 {
			continue
		}
		out[k] = v
	}
	if err := s.backend.Save(out); err != nil {
		s.logger.Printf("save failed: %v", err)
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Tasks returns the bucket for date, creating it when absent.
// The returned slice aliases store memory; do not modify it.
func (s *Store) Tasks(date time.Time) []Task {
	k := Key(date)
	bucket, ok := s.tasks[k]
	if !ok {
		bucket = []Task{}
		s.tasks[k] = bucket
	}
	return bucket
}

// Len returns the number of tasks on date.
func (s *Store) Len(date time.Time) int {
	return len(s.tasks[Key(date)])
}

// OpenCount returns the number of tasks on date that are not done.
func (s *Store) OpenCount(date time.Time) int {
	n := 0
	for _, t := range s.tasks[Key(date)] {
		if !t.Done {
			n++
		}
	}
	return n
}

// Add appends a pending task to date. Whitespace-only text is ignored.
func (s *Store) Add(date time.Time, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	k := Key(date)
	s.tasks[k] = append(s.tasks[k], Task{Text: text})
	return s.Save()
}

// Toggle flips the done flag of the task at index on date.
// Out-of-range indexes are ignored.
func (s *Store) Toggle(date time.Time, index int) error {
	k := Key(date)
	bucket := s.tasks[k]
	if index < 0 || index >= len(bucket) {
		return nil
	}
	bucket[index].Done = !bucket[index].Done
	return s.Save()
}

// Delete removes the task at index on date. Out-of-range indexes are ignored.
func (s *Store) Delete(date time.Time, index int) error {
	k := Key(date)
	bucket := s.tasks[k]
	if index < 0 || index >= len(bucket) {
		return nil
	}
	s.tasks[k] = append(bucket[:index:index], bucket[index+1:]...)
	return s.Save()
}
