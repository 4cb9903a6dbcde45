package model

import (
	"fmt"
	"strings"
)

// Metric identifies one of the five tracked body metrics. Each metric maps to
// accessor functions on Measurement and Goal, so callers never look fields up by name.
type Metric string

const (
	MetricWeight      Metric = "weight"
	MetricBodyFat     Metric = "body_fat"
	MetricVisceralFat Metric = "visceral_fat"
	MetricLeanMass    Metric = "lean_mass"
	MetricWaist       Metric = "waist"
)

// AllMetrics lists every metric in form order.
var AllMetrics = []Metric{MetricWeight, MetricBodyFat, MetricVisceralFat, MetricLeanMass, MetricWaist}

// ProgressMetrics are the metrics shown as progress toward the final goal.
var ProgressMetrics = []Metric{MetricWeight, MetricBodyFat, MetricWaist}

// ChartMetrics are the metrics charted on the dashboard, in display order.
var ChartMetrics = []Metric{MetricWeight, MetricBodyFat, MetricWaist, MetricLeanMass}

type metricInfo struct {
	label  string
	unit   string
	of     func(Measurement) float64
	target func(Goal) float64
	set    func(*Goal, float64)
}

var metrics = map[Metric]metricInfo{
	MetricWeight: {
		label:  "Weight",
		unit:   "lbs",
		of:     func(m Measurement) float64 { return m.WeightLbs },
		target: func(g Goal) float64 { return g.WeightLbs },
		set:    func(g *Goal, v float64) { g.WeightLbs = v },
	},
	MetricBodyFat: {
		label:  "Body fat",
		unit:   "%",
		of:     func(m Measurement) float64 { return m.BodyFatPercent },
		target: func(g Goal) float64 { return g.BodyFatPercent },
		set:    func(g *Goal, v float64) { g.BodyFatPercent = v },
	},
	MetricVisceralFat: {
		label:  "Visceral fat",
		unit:   "",
		of:     func(m Measurement) float64 { return m.VisceralFat },
		target: func(g Goal) float64 { return g.VisceralFat },
		set:    func(g *Goal, v float64) { g.VisceralFat = v },
	},
	MetricLeanMass: {
		label:  "Lean mass",
		unit:   "lbs",
		of:     func(m Measurement) float64 { return m.LeanMassLbs },
		target: func(g Goal) float64 { return g.LeanMassLbs },
		set:    func(g *Goal, v float64) { g.LeanMassLbs = v },
	},
	MetricWaist: {
		label:  "Waist",
		unit:   "cm",
		of:     func(m Measurement) float64 { return m.WaistCm },
		target: func(g Goal) float64 { return g.WaistCm },
		set:    func(g *Goal, v float64) { g.WaistCm = v },
	},
}

// ParseMetric accepts the metric identifier with dashes or underscores.
func ParseMetric(s string) (Metric, error) {
	norm := Metric(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if _, ok := metrics[norm]; ok {
		return norm, nil
	}
	return "", fmt.Errorf("metric %q: %w", s, ErrInvalidEnum)
}

// Label is the human-readable metric name.
func (m Metric) Label() string { return metrics[m].label }

// Unit is the display unit; empty for unitless metrics.
func (m Metric) Unit() string { return metrics[m].unit }

// Of returns the metric's value in a measurement.
func (m Metric) Of(ms Measurement) float64 { return metrics[m].of(ms) }

// Target returns the metric's value in a goal.
func (m Metric) Target(g Goal) float64 { return metrics[m].target(g) }

// Set assigns the metric's value in a goal.
func (m Metric) Set(g *Goal, v float64) { metrics[m].set(g, v) }

// Values returns every metric of a measurement keyed by identifier.
func (ms Measurement) Values() map[Metric]float64 {
	out := make(map[Metric]float64, len(AllMetrics))
	for _, m := range AllMetrics {
		out[m] = m.Of(ms)
	}
	return out
}

// Values returns every metric of a goal keyed by identifier.
func (g Goal) Values() map[Metric]float64 {
	out := make(map[Metric]float64, len(AllMetrics))
	for _, m := range AllMetrics {
		out[m] = m.Target(g)
	}
	return out
}
