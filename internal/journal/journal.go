// Package journal persists received thoughts and issued interactions to a
// local SQLite database. It is a record only: nothing here ever feeds
// state back into the animation machine.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one journal row.
type Entry struct {
	ID        int64
	Kind      string
	Content   string
	Weight    float64
	Timestamp time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS memories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	content TEXT NOT NULL,
	emotional_weight REAL NOT NULL DEFAULT 0.5,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_memories_ts ON memories(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_memories_kind ON memories(kind);
`

// Store provides SQLite-backed persistence for journal entries.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("open journal: path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("open journal: init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts a new entry. Satisfies the bridge's Recorder interface.
func (s *Store) Record(kind, content string, weight float64) error {
	if kind == "" {
		return fmt.Errorf("record: kind is empty")
	}
	if content == "" {
		return fmt.Errorf("record: content is empty")
	}

	now := time.Now().UTC().Unix()
	_, err := s.db.Exec(
		`INSERT INTO memories (kind, content, emotional_weight, timestamp) VALUES (?, ?, ?, ?)`,
		kind, content, weight, now,
	)
	if err != nil {
		return fmt.Errorf("record: insert: %w", err)
	}
	return nil
}

// Recent returns the most recent n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT id, kind, content, emotional_weight, timestamp
		 FROM memories ORDER BY timestamp DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent: query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &e.Kind, &e.Content, &e.Weight, &ts); err != nil {
			return nil, fmt.Errorf("recent: scan: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent: rows: %w", err)
	}

	return entries, nil
}

// RecentByKind returns the most recent n entries of one kind, newest first.
func (s *Store) RecentByKind(kind string, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT id, kind, content, emotional_weight, timestamp
		 FROM memories WHERE kind = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, kind, n)
	if err != nil {
		return nil, fmt.Errorf("recent by kind: query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &e.Kind, &e.Content, &e.Weight, &ts); err != nil {
			return nil, fmt.Errorf("recent by kind: scan: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent by kind: rows: %w", err)
	}

	return entries, nil
}

// Count returns the total number of journal entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM memories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
