package testutil

import (
	"context"
	"errors"
	"sync"

	"fitfocus/internal/fitfocus"
	"fitfocus/internal/store"
)

// ErrInjected is returned by FailingStore for namespaces set to fail.
var ErrInjected = errors.New("injected store failure")

// FailingStore wraps a memory store and fails writes or reads on chosen
// namespaces, to exercise persistence error handling.
type FailingStore struct {
	*store.MemoryStore

	mu        sync.Mutex
	failSave  map[fitfocus.Namespace]bool
	failLoad  map[fitfocus.Namespace]bool
	SaveCalls int
}

// NewFailingStore creates a FailingStore that succeeds until told otherwise.
func NewFailingStore() *FailingStore {
	return &FailingStore{
		MemoryStore: store.NewMemoryStore(),
		failSave:    make(map[fitfocus.Namespace]bool),
		failLoad:    make(map[fitfocus.Namespace]bool),
	}
}

// FailSave makes Save on ns return ErrInjected.
func (f *FailingStore) FailSave(ns fitfocus.Namespace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSave[ns] = true
}

// FailLoad makes Load on ns return ErrInjected.
func (f *FailingStore) FailLoad(ns fitfocus.Namespace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failLoad[ns] = true
}

func (f *FailingStore) Load(ctx context.Context, ns fitfocus.Namespace) ([]byte, error) {
	f.mu.Lock()
	fail := f.failLoad[ns]
	f.mu.Unlock()
	if fail {
		return nil, ErrInjected
	}
	return f.MemoryStore.Load(ctx, ns)
}

func (f *FailingStore) Save(ctx context.Context, ns fitfocus.Namespace, data []byte) error {
	f.mu.Lock()
	f.SaveCalls++
	fail := f.failSave[ns]
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.MemoryStore.Save(ctx, ns, data)
}

var _ fitfocus.Store = (*FailingStore)(nil)
