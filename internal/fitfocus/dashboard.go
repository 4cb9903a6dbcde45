package fitfocus

import (
	"fitfocus/internal/analytics"
	"fitfocus/internal/model"
)

// Progress is one metric's progress from the first measurement toward a goal.
type Progress struct {
	Metric  model.Metric
	Start   float64
	Current float64
	Target  float64
	Percent float64
}

// Chart is a metric's history ready for plotting.
type Chart struct {
	Metric model.Metric
	Points []analytics.Point
}

// Dashboard is everything the dashboard screen shows. With no measurements
// only Charts is populated (with empty series).
type Dashboard struct {
	HasData              bool
	Latest               model.Measurement
	BMI                  float64
	Category             analytics.Category
	FinalProgress        []Progress
	IntermediateProgress []Progress
	Charts               []Chart
}

// BuildDashboard computes the dashboard view from a snapshot.
func BuildDashboard(snap *Snapshot) Dashboard {
	var d Dashboard
	for _, m := range model.ChartMetrics {
		d.Charts = append(d.Charts, Chart{Metric: m, Points: analytics.Series(snap.Measurements, m)})
	}
	if len(snap.Measurements) == 0 {
		return d
	}

	d.HasData = true
	d.Latest = snap.Measurements[len(snap.Measurements)-1]
	d.BMI = analytics.BMI(d.Latest.WeightLbs, snap.Goals.Profile.HeightCm)
	d.Category = analytics.ClassifyBMI(d.BMI)
	d.FinalProgress = progressToward(snap.Measurements, snap.Goals.Final)
	d.IntermediateProgress = progressToward(snap.Measurements, snap.Goals.Intermediate)
	return d
}

func progressToward(history []model.Measurement, goal model.Goal) []Progress {
	first := history[0]
	latest := history[len(history)-1]

	out := make([]Progress, 0, len(model.ProgressMetrics))
	for _, m := range model.ProgressMetrics {
		pct, _ := analytics.MetricProgress(history, goal, m)
		out = append(out, Progress{
			Metric:  m,
			Start:   m.Of(first),
			Current: m.Of(latest),
			Target:  m.Target(goal),
			Percent: pct,
		})
	}
	return out
}
