package event

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store is an append-only log of events in a single SQLite table.
//
// Each operation opens and closes its own connection. Volumes are low
// and no long-lived handle is held, so the store can be shared freely;
// write atomicity is delegated to SQLite.
type Store struct {
	path string
}

// New returns a Store backed by the SQLite database at path. No I/O
// happens until the first operation.
func New(path string) *Store {
	return &Store{path: path}
}

// Initialize ensures the events table exists. It is idempotent and safe
// to call on every process start.
func (s *Store) Initialize(ctx context.Context) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	_, err = db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		);`)
	if err != nil {
		return fmt.Errorf("%w: create events table: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Append inserts one event with a store-assigned id and timestamp. The
// type vocabulary is open; only an empty type is rejected.
func (s *Store) Append(ctx context.Context, eventType string) error {
	if strings.TrimSpace(eventType) == "" {
		return ErrEmptyType
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	if _, err := db.ExecContext(ctx, `INSERT INTO events (event_type) VALUES (?)`, eventType); err != nil {
		return fmt.Errorf("%w: insert event: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// AggregateCounts scans all events and returns the total count plus a
// per-type breakdown. An empty store yields Total=0 and an empty map.
func (s *Store) AggregateCounts(ctx context.Context) (AggregateReport, error) {
	db, err := s.open()
	if err != nil {
		return AggregateReport{}, err
	}
	defer closeQuietly(db)

	rows, err := db.QueryContext(ctx,
		`SELECT event_type, COUNT(*) FROM events GROUP BY event_type`)
	if err != nil {
		return AggregateReport{}, fmt.Errorf("%w: aggregate events: %v", ErrStoreUnavailable, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	report := AggregateReport{ByType: map[string]int{}}
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return AggregateReport{}, fmt.Errorf("%w: scan counts: %v", ErrStoreUnavailable, err)
		}
		report.ByType[eventType] = count
		report.Total += count
	}
	if err := rows.Err(); err != nil {
		return AggregateReport{}, fmt.Errorf("%w: read counts: %v", ErrStoreUnavailable, err)
	}
	return report, nil
}

func (s *Store) open() (*sql.DB, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrStoreUnavailable, err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrStoreUnavailable, err)
	}
	return db, nil
}

func closeQuietly(db *sql.DB) {
	if cerr := db.Close(); cerr != nil {
		// Best-effort close.
		_ = cerr
	}
}
