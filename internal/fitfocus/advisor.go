package fitfocus

import (
	"context"

	"fitfocus/internal/analytics"
	"fitfocus/internal/model"
)

// MotivationRequest carries the state a motivational message is written from.
// History holds measurements recorded before Current.
type MotivationRequest struct {
	Current      model.Measurement
	History      []model.Measurement
	Intermediate model.Goal
	Final        model.Goal
	Profile      model.HealthProfile
}

// Advisor produces coaching text from a generative-language service.
// Implementations never fail: on any error they return fixed fallback text
// specific to the call, so callers only ever see degraded content.
type Advisor interface {
	// Motivation comments on the latest measurement in the light of recent history and goals.
	Motivation(ctx context.Context, req MotivationRequest) string

	// MealSuggestion proposes a dish for the given meal.
	MealSuggestion(ctx context.Context, meal model.MealType, profile model.HealthProfile) string

	// DietAnalysis gives quick advice on a day's food entries.
	DietAnalysis(ctx context.Context, entries []model.FoodEntry, profile model.HealthProfile) string

	// EasyWin suggests a small, achievable goal after a stalled or reversed trend.
	EasyWin(ctx context.Context, metric string, direction analytics.Direction, profile model.HealthProfile) string
}
