package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fitfocus/internal/fitfocus"
)

// FileStore keeps each namespace as a JSON file in one directory:
//
//	<dir>/
//	  measurements.json
//	  food.json
//	  goals.json
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(ns fitfocus.Namespace) string {
	return filepath.Join(f.dir, string(ns)+".json")
}

// Load reads the namespace file.
func (f *FileStore) Load(_ context.Context, ns fitfocus.Namespace) ([]byte, error) {
	data, err := os.ReadFile(f.path(ns))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fitfocus.ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", ns, err)
	}
	return data, nil
}

// Save writes to a temp file in the same directory and renames it over the
// namespace file, so a crash never leaves a half-written value behind.
func (f *FileStore) Save(_ context.Context, ns fitfocus.Namespace, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, "."+string(ns)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", ns, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", ns, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path(ns)); err != nil {
		return fmt.Errorf("replacing %s: %w", ns, err)
	}
	return nil
}

// Close is a no-op; files are closed after every operation.
func (f *FileStore) Close() error {
	return nil
}

var _ fitfocus.Store = (*FileStore)(nil)
