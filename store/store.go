// Package store persists named vectors in a SQL database.
//
// Vectors are stored in their CBOR wire form. The sqlite driver
// (modernc.org/sqlite) is always available; duckdb is registered when the
// binary is built with cgo.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/chazu/rvec/vec"
	"github.com/chazu/rvec/vec/dist"
)

// ErrNotFound indicates the requested vector doesn't exist.
var ErrNotFound = errors.New("vector not found")

var log = commonlog.GetLogger("rvec.store")

// Store handles SQL storage for named vectors.
type Store struct {
	db     *sql.DB
	driver string
	mu     sync.Mutex
}

// Open opens or creates a vector store. driver is "sqlite" or "duckdb".
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if driver == "sqlite" {
		// Set busy timeout for concurrent access
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting busy timeout: %w", err)
		}
	}

	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS vectors (
		name TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		length BIGINT NOT NULL,
		data BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	log.Infof("opened %s store %s", driver, dsn)
	return &Store{db: db, driver: driver}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Driver returns the name of the SQL driver in use.
func (s *Store) Driver() string { return s.driver }

// Put stores v under name, replacing any previous vector.
func (s *Store) Put(ctx context.Context, name string, v vec.Value) error {
	if name == "" {
		return fmt.Errorf("saving vector: empty name")
	}
	data, err := dist.MarshalVector(v)
	if err != nil {
		return fmt.Errorf("saving vector %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO vectors (name, kind, length, data) VALUES (?, ?, ?, ?)",
		name, v.Kind().String(), v.Len(), data,
	)
	if err != nil {
		return fmt.Errorf("saving vector %q: %w", name, err)
	}

	log.Debugf("saved %s %s[%d]", name, v.Kind(), v.Len())
	return nil
}

// Get retrieves the vector stored under name.
func (s *Store) Get(ctx context.Context, name string) (*vec.Vector, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM vectors WHERE name = ?", name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("querying vector %q: %w", name, err)
	}

	v, err := dist.UnmarshalVector(data)
	if err != nil {
		return nil, fmt.Errorf("decoding vector %q: %w", name, err)
	}
	return v, nil
}

// Delete removes the vector stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM vectors WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting vector %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// Entry summarizes a stored vector without decoding it.
type Entry struct {
	Name   string
	Kind   vec.Kind
	Length int
}

// List returns every stored vector ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, kind, length FROM vectors ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing vectors: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			kind string
		)
		if err := rows.Scan(&e.Name, &kind, &e.Length); err != nil {
			return nil, fmt.Errorf("listing vectors: %w", err)
		}
		if e.Kind, err = vec.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("listing vectors: %q: %w", e.Name, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
