package analytics

import (
	"errors"
	"fmt"
	"math"

	"fitfocus/internal/model"
)

var (
	// ErrNotFinite is returned for NaN or infinite input.
	ErrNotFinite = errors.New("value is not a finite number")
	// ErrNegative is returned for input below zero.
	ErrNegative = errors.New("value must not be negative")
)

// ValidateValue checks that a user-entered metric is a finite, non-negative number.
func ValidateValue(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", name, ErrNotFinite)
	}
	if v < 0 {
		return fmt.Errorf("%s: %w", name, ErrNegative)
	}
	return nil
}

// ValidateMetrics validates every metric value, reporting the first failure in
// form order.
func ValidateMetrics(values map[model.Metric]float64) error {
	for _, m := range model.AllMetrics {
		v, ok := values[m]
		if !ok {
			continue
		}
		if err := ValidateValue(string(m), v); err != nil {
			return err
		}
	}
	return nil
}
