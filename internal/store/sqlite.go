package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitfocus/internal/fitfocus"
	"fitfocus/internal/store/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore keeps every namespace as one row of the kv table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens the database at path, applies pending migrations and
// verifies the schema version. path can be a file path or ":memory:".
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.CheckMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenConnection opens and configures a SQLite connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single writer keeps ":memory:" databases on one connection and
	// serialises saves.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Load returns the value stored under ns.
func (s *SQLiteStore) Load(ctx context.Context, ns fitfocus.Namespace) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE namespace = ?", string(ns)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fitfocus.ErrNotFound
		}
		return nil, fmt.Errorf("querying %s: %w", ns, err)
	}
	return data, nil
}

// Save upserts the value stored under ns.
func (s *SQLiteStore) Save(ctx context.Context, ns fitfocus.Namespace, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (namespace, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		string(ns), data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upserting %s: %w", ns, err)
	}
	return nil
}

// Path returns the database path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// CheckMigrations verifies the schema is at the latest version.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Compile-time check that SQLiteStore implements fitfocus.Store interface
var _ fitfocus.Store = (*SQLiteStore)(nil)
