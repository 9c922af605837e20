package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLite persists tasks in a single table. Each save rewrites the table in
// one transaction so the on-disk state always matches one snapshot.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(dbPath string) (*SQLite, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close implements Backend.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	date TEXT NOT NULL,
	position INTEGER NOT NULL,
	text TEXT NOT NULL DEFAULT '',
	done INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (date, position)
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Load implements Backend.
func (s *SQLite) Load() (map[string][]Task, error) {
	rows, err := s.db.Query(`SELECT date, text, done FROM tasks ORDER BY date, position;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Task)
	for rows.Next() {
		var date string
		var text sql.NullString
		var doneInt int
		if err := rows.Scan(&date, &text, &doneInt); err != nil {
			return nil, err
		}
		out[date] = append(out[date], Task{Text: text.String, Done: doneInt != 0})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save implements Backend.
func (s *SQLite) Save(tasks map[string][]Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM tasks;`); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO tasks (date, position, text, done) VALUES (?, ?, ?, ?);`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for date, bucket := range tasks {
		for i, t := range bucket {
			done := 0
			if t.Done {
				done = 1
			}
			if _, err := stmt.Exec(date, i, t.Text, done); err != nil {
				tx.Rollback()
				return fmt.Errorf("insert %s #%d: %w", date, i, err)
			}
		}
	}
	return tx.Commit()
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
