package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists events in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite-backed store at the given path.
// Use ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			stream    TEXT    NOT NULL,
			version   INTEGER NOT NULL,
			id        TEXT    NOT NULL,
			type      TEXT    NOT NULL,
			data      TEXT,
			timestamp TEXT    NOT NULL,
			PRIMARY KEY (stream, version)
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Append adds events to a stream inside a single transaction.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return expectedVersion, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var head sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT MAX(version) FROM events WHERE stream = ?`, stream).Scan(&head)
	if err != nil {
		return -1, fmt.Errorf("read head: %w", err)
	}

	current := -1
	if head.Valid {
		current = int(head.Int64)
	}
	if expectedVersion != current {
		return current, ErrVersionConflict
	}

	version := current
	for _, e := range events {
		version++
		var data any
		if e.Data != nil {
			data = string(e.Data)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (stream, version, id, type, data, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			stream, version, e.ID, e.Type, data,
			e.Timestamp.Format(time.RFC3339Nano))
		if err != nil {
			return -1, fmt.Errorf("insert event: %w", err)
		}
		e.Version = version
		e.Stream = stream
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("commit: %w", err)
	}
	return version, nil
}

// Read returns events for a stream starting at fromVersion, in order.
func (s *SQLiteStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, data, timestamp
		 FROM events WHERE stream = ? AND version >= ?
		 ORDER BY version`, stream, fromVersion)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		var (
			e    Event
			data sql.NullString
			ts   string
		)
		if err := rows.Scan(&e.Version, &e.ID, &e.Type, &data, &ts); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Stream = stream
		if data.Valid {
			e.Data = json.RawMessage(data.String)
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		e.Timestamp = t
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
