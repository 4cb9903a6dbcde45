package store

import (
	"context"
	"sync"

	"fitfocus/internal/fitfocus"
)

// MemoryStore is an in-memory implementation of the Store interface.
// Nothing survives the process, which makes it useful for tests and dry runs.
// This implementation is safe for concurrent use.
type MemoryStore struct {
	values map[fitfocus.Namespace][]byte
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[fitfocus.Namespace][]byte)}
}

// Load returns a copy of the stored value.
func (m *MemoryStore) Load(_ context.Context, ns fitfocus.Namespace) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.values[ns]
	if !ok {
		return nil, fitfocus.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data.
func (m *MemoryStore) Save(_ context.Context, ns fitfocus.Namespace, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[ns] = append([]byte(nil), data...)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

// Compile-time check that MemoryStore implements fitfocus.Store interface
var _ fitfocus.Store = (*MemoryStore)(nil)
