// Package analytics holds the pure formulas behind the dashboard: BMI and its
// category, progress toward a goal, and the three-sample weight trend check.
//
// Every function is total. Degenerate inputs return defined values (BMI 0 for
// zero height, progress 100 when start equals goal) and NaN propagates under
// normal floating-point rules. Callers validate user input with ValidateValue
// before it reaches these functions.
package analytics

import (
	"math"

	"fitfocus/internal/model"
)

const (
	kgPerLb = 0.453592

	// trendWindow is the number of most recent measurements the trend spans.
	trendWindow = 3
	// minFatLoss is the smallest drop (lbs) over the window that counts as fat-loss progress.
	minFatLoss = 0.1
	// maxGain is the gain (lbs) over the window that always signals regression.
	maxGain = 2.0
)

// BMI returns weight in kilograms divided by height in meters squared.
// Zero height yields 0 rather than a division by zero.
func BMI(weightLbs, heightCm float64) float64 {
	if heightCm == 0 {
		return 0
	}
	weightKg := weightLbs * kgPerLb
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// Severity orders BMI categories from the low end to the high end.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityNormal
	SeverityElevated
	SeverityHigh
)

// Category is a labelled BMI range.
type Category struct {
	Label    string
	Severity Severity
}

// ClassifyBMI maps a BMI to its category. Lower bounds are inclusive.
func ClassifyBMI(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return Category{Label: "Underweight", Severity: SeverityLow}
	case bmi < 25:
		return Category{Label: "Normal", Severity: SeverityNormal}
	case bmi < 30:
		return Category{Label: "Overweight", Severity: SeverityElevated}
	default:
		return Category{Label: "Obese", Severity: SeverityHigh}
	}
}

// GoalProgress returns how far current has moved from start toward goal, as a
// percentage clamped to [0, 100]. It works for metrics that should rise and
// metrics that should fall. When start equals goal the goal is already met.
func GoalProgress(current, start, goal float64) float64 {
	if start == goal {
		return 100
	}
	pct := (start - current) / (start - goal) * 100
	return math.Min(math.Max(pct, 0), 100)
}

// MetricProgress measures progress of one metric from the first recorded
// measurement to the latest, toward the goal's target. ok is false when
// history is empty.
func MetricProgress(history []model.Measurement, goal model.Goal, metric model.Metric) (pct float64, ok bool) {
	if len(history) == 0 {
		return 0, false
	}
	first, latest := history[0], history[len(history)-1]
	return GoalProgress(metric.Of(latest), metric.Of(first), metric.Target(goal)), true
}

// Point is one chart sample.
type Point struct {
	Date  string // "02 Jan"
	Value float64
}

// Series extracts a metric's values from history in insertion order.
func Series(history []model.Measurement, metric model.Metric) []Point {
	points := make([]Point, 0, len(history))
	for _, m := range history {
		points = append(points, Point{Date: m.Date.Local().Format("02 Jan"), Value: metric.Of(m)})
	}
	return points
}

// Direction names what a triggered trend signal means.
type Direction string

const (
	DirectionNone       Direction = "none"
	DirectionStagnation Direction = "stagnation"
	DirectionRegression Direction = "regression"
)

// Signal is the outcome of DetectTrend. Delta is the weight change over the window.
type Signal struct {
	Triggered bool
	Direction Direction
	Delta     float64
}

// DetectTrend compares the latest weight with the weight two measurements
// earlier. It fires when a fat-loss objective loses less than 0.1 lbs over that
// window, or when weight rises by more than 2 lbs under any objective. Fewer
// than three measurements never fire.
func DetectTrend(history []model.Measurement, objective model.Objective) Signal {
	if len(history) < trendWindow {
		return Signal{Direction: DirectionNone}
	}

	delta := history[len(history)-1].WeightLbs - history[len(history)-trendWindow].WeightLbs

	switch {
	case objective == model.ObjectiveLoseFat && delta >= -minFatLoss:
		if delta > 0 {
			return Signal{Triggered: true, Direction: DirectionRegression, Delta: delta}
		}
		return Signal{Triggered: true, Direction: DirectionStagnation, Delta: delta}
	case delta > maxGain:
		return Signal{Triggered: true, Direction: DirectionRegression, Delta: delta}
	default:
		return Signal{Direction: DirectionNone, Delta: delta}
	}
}
