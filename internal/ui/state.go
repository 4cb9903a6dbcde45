// Package ui holds the presentation state of the tracker, the pure update
// function that advances it, the terminal renderer and the interactive shell.
package ui

import (
	"fmt"
	"strings"
	"time"

	"fitfocus/internal/model"
)

// InitialMotivation is shown until the first advisor reply arrives.
const InitialMotivation = "Welcome! Save your profile in settings for an accurate BMI and health analysis."

// GoalsSavedNotice is shown after the goals and profile are saved.
const GoalsSavedNotice = "Health profile updated."

// Tab is one of the four screens.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabFood      Tab = "food"
	TabEntry     Tab = "entry"
	TabSettings  Tab = "settings"
)

// Tabs lists the screens in navigation order.
var Tabs = []Tab{TabDashboard, TabFood, TabEntry, TabSettings}

// ParseTab accepts a tab name or a unique prefix of one.
func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("tab name is empty")
	}
	for _, t := range Tabs {
		if strings.HasPrefix(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// State is everything the screens show besides the tracked data itself.
type State struct {
	Tab Tab

	Motivation string
	AILoading  bool
	EasyWin    string // empty when no trend alert is showing

	MealType          model.MealType
	Suggestion        string
	SuggestionLoading bool
	DietAnalysis      string

	// Draft is the goals and profile being edited on the settings screen.
	Draft  model.UserGoals
	Notice string
}

// NewState returns the state at start-up. The selected meal follows the hour of now.
func NewState(goals model.UserGoals, now time.Time) State {
	return State{
		Tab:        TabDashboard,
		Motivation: InitialMotivation,
		MealType:   model.MealTypeForHour(now.Hour()),
		Draft:      goals,
	}
}

// Action is an event that moves State forward. See Update.
type Action interface {
	action()
}

type (
	// Loaded replaces the draft with the persisted goals.
	Loaded struct{ Goals model.UserGoals }
	// SelectTab switches screens.
	SelectTab struct{ Tab Tab }
	// MeasurementAdded returns to the dashboard while the coach thinks.
	MeasurementAdded struct{}
	// MotivationReceived ends the coach's loading state.
	MotivationReceived struct{ Text string }
	// EasyWinReceived shows, or with empty Text clears, the trend alert.
	EasyWinReceived struct{ Text string }
	// FoodAdded confirms a logged meal.
	FoodAdded struct{ Entry model.FoodEntry }
	// MealTypeSelected picks which meal suggestions are for.
	MealTypeSelected struct{ Meal model.MealType }
	// SuggestionRequested starts loading a meal suggestion.
	SuggestionRequested struct{}
	// SuggestionReceived ends loading a meal suggestion.
	SuggestionReceived struct{ Text string }
	// DietAnalysisReceived shows the analysis of today's meals.
	DietAnalysisReceived struct{ Text string }
	// DraftChanged replaces the settings draft.
	DraftChanged struct{ Goals model.UserGoals }
	// GoalsUpdated follows a successful save.
	GoalsUpdated struct{ Goals model.UserGoals }
)

func (Loaded) action()               {}
func (SelectTab) action()            {}
func (MeasurementAdded) action()     {}
func (MotivationReceived) action()   {}
func (EasyWinReceived) action()      {}
func (FoodAdded) action()            {}
func (MealTypeSelected) action()     {}
func (SuggestionRequested) action()  {}
func (SuggestionReceived) action()   {}
func (DietAnalysisReceived) action() {}
func (DraftChanged) action()         {}
func (GoalsUpdated) action()         {}

// Update returns the state after a. It never mutates s and performs no I/O.
func Update(s State, a Action) State {
	switch a := a.(type) {
	case Loaded:
		s.Draft = a.Goals
	case SelectTab:
		s.Tab = a.Tab
		s.Notice = ""
	case MeasurementAdded:
		s.Tab = TabDashboard
		s.AILoading = true
		s.Notice = ""
	case MotivationReceived:
		s.AILoading = false
		if a.Text != "" {
			s.Motivation = a.Text
		}
	case EasyWinReceived:
		s.EasyWin = a.Text
	case FoodAdded:
		s.Notice = fmt.Sprintf("Added to %s: %s", strings.ToLower(string(a.Entry.Type)), a.Entry.Description)
	case MealTypeSelected:
		if a.Meal != s.MealType {
			s.Suggestion = ""
		}
		s.MealType = a.Meal
	case SuggestionRequested:
		s.SuggestionLoading = true
	case SuggestionReceived:
		s.SuggestionLoading = false
		s.Suggestion = a.Text
	case DietAnalysisReceived:
		if a.Text != "" {
			s.DietAnalysis = a.Text
		}
	case DraftChanged:
		s.Draft = a.Goals
	case GoalsUpdated:
		// A saved profile invalidates suggestions made for the old one.
		s.Suggestion = ""
		s.Draft = a.Goals
		s.Tab = TabDashboard
		s.Notice = GoalsSavedNotice
	}
	return s
}
