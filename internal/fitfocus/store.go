package fitfocus

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Load when nothing has been saved under a namespace.
var ErrNotFound = errors.New("not found")

// Namespace names one independently persisted value.
type Namespace string

const (
	NamespaceMeasurements Namespace = "measurements" // []model.Measurement
	NamespaceFood         Namespace = "food"         // []model.FoodEntry
	NamespaceGoals        Namespace = "goals"        // model.UserGoals
)

// Namespaces lists every namespace the service reads and writes.
var Namespaces = []Namespace{NamespaceMeasurements, NamespaceFood, NamespaceGoals}

// Store is a key-value store of serialized state, one value per namespace.
// Writes to different namespaces are independent; there are no cross-namespace
// transactions.
type Store interface {
	// Load returns the bytes last saved under ns, or ErrNotFound.
	Load(ctx context.Context, ns Namespace) ([]byte, error)

	// Save replaces the value stored under ns.
	Save(ctx context.Context, ns Namespace, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}
