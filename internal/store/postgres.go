package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitfocus/internal/fitfocus"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS fitfocus_kv (
    namespace  TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps every namespace as one row of the fitfocus_kv table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and creates the table if it is missing.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Load returns the value stored under ns.
func (p *PostgresStore) Load(ctx context.Context, ns fitfocus.Namespace) ([]byte, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		"SELECT value FROM fitfocus_kv WHERE namespace = @namespace",
		pgx.NamedArgs{"namespace": string(ns)}).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fitfocus.ErrNotFound
		}
		return nil, fmt.Errorf("querying %s: %w", ns, err)
	}
	return data, nil
}

// Save upserts the value stored under ns.
func (p *PostgresStore) Save(ctx context.Context, ns fitfocus.Namespace, data []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO fitfocus_kv (namespace, value, updated_at)
		VALUES (@namespace, @value, @updatedAt)
		ON CONFLICT (namespace) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		pgx.NamedArgs{"namespace": string(ns), "value": data, "updatedAt": time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("upserting %s: %w", ns, err)
	}
	return nil
}

// Close closes every pooled connection.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

var _ fitfocus.Store = (*PostgresStore)(nil)
