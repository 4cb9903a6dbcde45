package fitfocus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"fitfocus/internal/analytics"
	"fitfocus/internal/model"
)

var (
	// ErrEmptyDescription is returned when a food entry has no text.
	ErrEmptyDescription = errors.New("description is empty")
	// ErrInvalidProfile is returned when a health profile field is out of range.
	ErrInvalidProfile = errors.New("invalid health profile")
)

// motivationHistory is how many previous measurements a motivational message considers.
const motivationHistory = 5

// easyWinMetric is the metric description sent with trend-triggered suggestions.
const easyWinMetric = "weight/body fat"

// Service is the orchestration layer between the presentation layer, the
// analytics engine, the advisor and the store.
type Service struct {
	store   Store
	advisor Advisor
	logger  Logger
	clock   Clock
	idgen   IDGenerator

	easyWin singleflight.Group
}

// NewService creates a Service with the provided dependencies.
func NewService(store Store, advisor Advisor, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		store:   store,
		advisor: advisor,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}
}

// Load reads every namespace. Missing namespaces start empty; missing goals
// start from model.DefaultGoals.
func (s *Service) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Goals: model.DefaultGoals()}

	if _, err := loadJSON(ctx, s.store, NamespaceMeasurements, &snap.Measurements); err != nil {
		return nil, err
	}
	if _, err := loadJSON(ctx, s.store, NamespaceFood, &snap.Food); err != nil {
		return nil, err
	}
	found, err := loadJSON(ctx, s.store, NamespaceGoals, &snap.Goals)
	if err != nil {
		return nil, err
	}
	if !found {
		s.logger.Debug("no saved goals, using defaults")
	}

	s.logger.Debug("state loaded", "measurements", len(snap.Measurements), "food", len(snap.Food))
	return snap, nil
}

// MeasurementInput is a measurement as entered by the user.
// A zero Date means "now".
type MeasurementInput struct {
	Date           time.Time
	WeightLbs      float64
	BodyFatPercent float64
	VisceralFat    float64
	LeanMassLbs    float64
	WaistCm        float64
}

// AddMeasurement validates the input, appends it to the history and persists
// the history. The snapshot is only updated once the write succeeds.
func (s *Service) AddMeasurement(ctx context.Context, snap *Snapshot, in MeasurementInput) (model.Measurement, error) {
	m := model.Measurement{
		ID:             s.idgen.New(),
		Date:           in.Date,
		WeightLbs:      in.WeightLbs,
		BodyFatPercent: in.BodyFatPercent,
		VisceralFat:    in.VisceralFat,
		LeanMassLbs:    in.LeanMassLbs,
		WaistCm:        in.WaistCm,
	}
	if m.Date.IsZero() {
		m.Date = s.clock.Now()
	}

	if err := analytics.ValidateMetrics(m.Values()); err != nil {
		return model.Measurement{}, fmt.Errorf("invalid measurement: %w", err)
	}

	next := append(append([]model.Measurement(nil), snap.Measurements...), m)
	if err := saveJSON(ctx, s.store, NamespaceMeasurements, next); err != nil {
		return model.Measurement{}, err
	}
	snap.Measurements = next

	s.logger.Info("measurement recorded", "id", m.ID, "weight_lbs", m.WeightLbs)
	return m, nil
}

// AddFood records what the user ate, timestamped now.
func (s *Service) AddFood(ctx context.Context, snap *Snapshot, meal model.MealType, description string) (model.FoodEntry, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.FoodEntry{}, ErrEmptyDescription
	}
	if _, err := model.ParseMealType(string(meal)); err != nil {
		return model.FoodEntry{}, err
	}

	e := model.FoodEntry{
		ID:          s.idgen.New(),
		Date:        s.clock.Now(),
		Type:        meal,
		Description: description,
	}

	next := append(append([]model.FoodEntry(nil), snap.Food...), e)
	if err := saveJSON(ctx, s.store, NamespaceFood, next); err != nil {
		return model.FoodEntry{}, err
	}
	snap.Food = next

	s.logger.Info("food recorded", "id", e.ID, "type", string(e.Type))
	return e, nil
}

// UpdateGoals validates and replaces the goals and profile.
func (s *Service) UpdateGoals(ctx context.Context, snap *Snapshot, goals model.UserGoals) error {
	if err := ValidateGoals(goals); err != nil {
		return err
	}
	if err := saveJSON(ctx, s.store, NamespaceGoals, goals); err != nil {
		return err
	}
	snap.Goals = goals

	s.logger.Info("goals updated", "objective", string(goals.Profile.Objective))
	return nil
}

// ValidateGoals checks both goals and the profile.
func ValidateGoals(goals model.UserGoals) error {
	if err := analytics.ValidateMetrics(goals.Intermediate.Values()); err != nil {
		return fmt.Errorf("intermediate goal: %w", err)
	}
	if err := analytics.ValidateMetrics(goals.Final.Values()); err != nil {
		return fmt.Errorf("final goal: %w", err)
	}
	return ValidateProfile(goals.Profile)
}

// ValidateProfile checks enumerations and that age and height are positive.
func ValidateProfile(p model.HealthProfile) error {
	if _, err := model.ParseObjective(string(p.Objective)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if _, err := model.ParseSex(string(p.Sex)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive, got %d", ErrInvalidProfile, p.Age)
	}
	if err := analytics.ValidateValue("height", p.HeightCm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if p.HeightCm == 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalidProfile)
	}
	return nil
}

// Motivate asks the advisor to comment on current. previous is the history
// recorded before current; only its last few entries are sent.
func (s *Service) Motivate(ctx context.Context, goals model.UserGoals, current model.Measurement, previous []model.Measurement) string {
	if len(previous) > motivationHistory {
		previous = previous[len(previous)-motivationHistory:]
	}
	return s.advisor.Motivation(ctx, MotivationRequest{
		Current:      current,
		History:      previous,
		Intermediate: goals.Intermediate,
		Final:        goals.Final,
		Profile:      goals.Profile,
	})
}

// CheckTrend runs trend detection over the history. When it fires and no
// easy win is showing yet, one is fetched; concurrent fetches share a single
// advisor call. When it does not fire the easy win is cleared (empty result).
func (s *Service) CheckTrend(ctx context.Context, snap *Snapshot, current string) (string, analytics.Signal) {
	sig := analytics.DetectTrend(snap.Measurements, snap.Goals.Profile.Objective)
	if !sig.Triggered {
		return "", sig
	}
	if current != "" {
		return current, sig
	}

	s.logger.Info("trend triggered", "direction", string(sig.Direction), "delta_lbs", sig.Delta)
	v, _, _ := s.easyWin.Do("easy-win", func() (any, error) {
		return s.advisor.EasyWin(ctx, easyWinMetric, sig.Direction, snap.Goals.Profile), nil
	})
	return v.(string), sig
}

// SuggestMeal asks the advisor for a dish for the given meal.
func (s *Service) SuggestMeal(ctx context.Context, meal model.MealType, profile model.HealthProfile) string {
	return s.advisor.MealSuggestion(ctx, meal, profile)
}

// AnalyzeToday asks the advisor about the food logged today. With nothing
// logged today there is nothing to analyze and the result is empty.
func (s *Service) AnalyzeToday(ctx context.Context, snap *Snapshot) string {
	today := TodayEntries(snap.Food, s.clock.Now())
	if len(today) == 0 {
		return ""
	}
	return s.advisor.DietAnalysis(ctx, today, snap.Goals.Profile)
}

// Now exposes the service clock to the presentation layer.
func (s *Service) Now() time.Time { return s.clock.Now() }

// TodayEntries returns the entries dated on the same local calendar day as now.
func TodayEntries(entries []model.FoodEntry, now time.Time) []model.FoodEntry {
	y, m, d := now.Local().Date()
	var out []model.FoodEntry
	for _, e := range entries {
		ey, em, ed := e.Date.Local().Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}
