// Package advisor produces coaching text from a chat-completion API, falling
// back to fixed text whenever the service cannot answer.
package advisor

import (
	"context"

	"fitfocus/internal/analytics"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
)

// Fallback text returned when a call fails for any reason.
const (
	FallbackMotivation     = "Consistency is the key. Keep going!"
	FallbackMealSuggestion = "A casamiento with scrambled egg and avocado."
	FallbackDietAnalysis   = "Keep logging your meals."
	FallbackEasyWin        = "Drink a glass of water before every meal."
)

// Offline never calls out and always answers with the fallback text.
type Offline struct{}

var _ fitfocus.Advisor = Offline{}

// Motivation returns FallbackMotivation.
func (Offline) Motivation(context.Context, fitfocus.MotivationRequest) string {
	return FallbackMotivation
}

// MealSuggestion returns FallbackMealSuggestion.
func (Offline) MealSuggestion(context.Context, model.MealType, model.HealthProfile) string {
	return FallbackMealSuggestion
}

// DietAnalysis returns FallbackDietAnalysis.
func (Offline) DietAnalysis(context.Context, []model.FoodEntry, model.HealthProfile) string {
	return FallbackDietAnalysis
}

// EasyWin returns FallbackEasyWin.
func (Offline) EasyWin(context.Context, string, analytics.Direction, model.HealthProfile) string {
	return FallbackEasyWin
}
