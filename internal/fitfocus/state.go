package fitfocus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fitfocus/internal/model"
)

// Snapshot is the full persisted state of one user.
type Snapshot struct {
	Measurements []model.Measurement
	Food         []model.FoodEntry
	Goals        model.UserGoals
}

// loadJSON decodes the value stored under ns into v.
// found is false when nothing has been stored yet.
func loadJSON(ctx context.Context, s Store, ns Namespace, v any) (found bool, err error) {
	data, err := s.Load(ctx, ns)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("loading %s: %w", ns, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", ns, err)
	}
	return true, nil
}

// saveJSON encodes v and stores it under ns.
func saveJSON(ctx context.Context, s Store, ns Namespace, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ns, err)
	}
	if err := s.Save(ctx, ns, data); err != nil {
		return fmt.Errorf("saving %s: %w", ns, err)
	}
	return nil
}
