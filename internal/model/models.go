package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidEnum is returned when a string does not name a known enumeration value.
var ErrInvalidEnum = errors.New("invalid value")

// Measurement is a dated snapshot of body metrics. Measurements are immutable
// once created and the history is append-only in insertion order.
type Measurement struct {
	ID             string    `json:"id"`   // UUID
	Date           time.Time `json:"date"` // When the measurement was taken
	WeightLbs      float64   `json:"weightLbs"`
	BodyFatPercent float64   `json:"bodyFatPercent"`
	VisceralFat    float64   `json:"visceralFat"`
	LeanMassLbs    float64   `json:"leanMassLbs"`
	WaistCm        float64   `json:"waistCm"`
}

// MealType classifies a food entry.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// MealTypes lists meal types in the order of a day.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMealType matches s case-insensitively against the known meal types.
func ParseMealType(s string) (MealType, error) {
	for _, t := range MealTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("meal type %q: %w", s, ErrInvalidEnum)
}

// MealTypeForHour returns the meal a user is most likely logging at the given
// hour of the day (0-23). Hours between meals count as snacks.
func MealTypeForHour(hour int) MealType {
	switch {
	case hour >= 5 && hour < 10:
		return MealBreakfast
	case hour >= 11 && hour < 15:
		return MealLunch
	case hour >= 18 && hour < 22:
		return MealDinner
	default:
		return MealSnack
	}
}

// FoodEntry is a dated record of something the user ate. Append-only.
type FoodEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Type        MealType  `json:"type"`
	Description string    `json:"description"`
}

// Objective is the user's primary health objective.
type Objective string

const (
	ObjectiveLoseFat       Objective = "lose fat"
	ObjectiveGainMuscle    Objective = "gain muscle"
	ObjectiveMaintenance   Objective = "maintenance"
	ObjectiveGeneralHealth Objective = "general health"
)

var Objectives = []Objective{ObjectiveLoseFat, ObjectiveGainMuscle, ObjectiveMaintenance, ObjectiveGeneralHealth}

// ParseObjective accepts the objective name with spaces, dashes or underscores.
func ParseObjective(s string) (Objective, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	for _, o := range Objectives {
		if strings.EqualFold(norm, string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("objective %q: %w", s, ErrInvalidEnum)
}

// Sex as self-reported in the health profile.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

var Sexes = []Sex{SexMale, SexFemale, SexOther}

func ParseSex(s string) (Sex, error) {
	for _, v := range Sexes {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("sex %q: %w", s, ErrInvalidEnum)
}

// Goal is a desired future value for each tracked metric.
type Goal struct {
	WeightLbs      float64 `json:"weightLbs"`
	BodyFatPercent float64 `json:"bodyFatPercent"`
	VisceralFat    float64 `json:"visceralFat"`
	LeanMassLbs    float64 `json:"leanMassLbs"`
	WaistCm        float64 `json:"waistCm"`
}

// HealthProfile describes the user. It is overwritten wholesale on save.
type HealthProfile struct {
	Objective  Objective `json:"objective"`
	Conditions string    `json:"conditions"`
	Age        int       `json:"age"`
	Sex        Sex       `json:"sex"`
	HeightCm   float64   `json:"heightCm"`
}

// UserGoals aggregates the near-term milestone, the end target and the profile.
type UserGoals struct {
	Intermediate Goal          `json:"intermediate"`
	Final        Goal          `json:"final"`
	Profile      HealthProfile `json:"profile"`
}

// DefaultGoals returns the goals a new user starts with.
func DefaultGoals() UserGoals {
	return UserGoals{
		Intermediate: Goal{
			WeightLbs:      170,
			BodyFatPercent: 20,
			VisceralFat:    8,
			LeanMassLbs:    145,
			WaistCm:        90,
		},
		Final: Goal{
			WeightLbs:      160,
			BodyFatPercent: 15,
			VisceralFat:    5,
			LeanMassLbs:    150,
			WaistCm:        80,
		},
		Profile: HealthProfile{
			Objective:  ObjectiveLoseFat,
			Conditions: "None",
			Age:        30,
			Sex:        SexMale,
			HeightCm:   170,
		},
	}
}
