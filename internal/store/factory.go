package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fitfocus/internal/config"
	"fitfocus/internal/fitfocus"
)

// Environment variables holding static S3 credentials, for S3-compatible
// servers outside the AWS credential chain.
const (
	EnvS3AccessKey = "FITFOCUS_S3_ACCESS_KEY_ID"
	EnvS3SecretKey = "FITFOCUS_S3_SECRET_ACCESS_KEY"
)

// SQLiteFileName is the database file created under data_dir for type=sqlite.
const SQLiteFileName = "fitfocus.db"

// NewStoreFromConfig creates a Store implementation based on the store config type.
func NewStoreFromConfig(ctx context.Context, cfg config.StoreConfig) (fitfocus.Store, error) {
	switch cfg.Type {
	case "file", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for file store")
		}
		s, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite store")
		}
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		s, err := NewSQLiteStore(filepath.Join(cfg.DataDir, SQLiteFileName))
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres_dsn required for postgres store")
		}
		s, err := NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "s3":
		s, err := NewS3Store(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: os.Getenv(EnvS3AccessKey),
			SecretKey: os.Getenv(EnvS3SecretKey),
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
