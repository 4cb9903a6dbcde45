package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fitfocus/internal/analytics"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
)

// ParseMeasurement reads the five metric values in form order:
// weight, body fat, visceral fat, lean mass, waist.
func ParseMeasurement(args []string) (fitfocus.MeasurementInput, error) {
	if len(args) != len(model.AllMetrics) {
		return fitfocus.MeasurementInput{}, fmt.Errorf("usage: measure <weight> <body fat> <visceral> <lean> <waist>")
	}
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := parseValue(string(model.AllMetrics[i]), a)
		if err != nil {
			return fitfocus.MeasurementInput{}, err
		}
		values[i] = v
	}
	return fitfocus.MeasurementInput{
		WeightLbs:      values[0],
		BodyFatPercent: values[1],
		VisceralFat:    values[2],
		LeanMassLbs:    values[3],
		WaistCm:        values[4],
	}, nil
}

// SetGoal sets one metric of the intermediate ("intermediate" or "i") or
// final ("final" or "f") goal in g.
func SetGoal(g *model.UserGoals, which, metricName, value string) (model.Metric, float64, error) {
	metric, err := model.ParseMetric(metricName)
	if err != nil {
		return "", 0, err
	}
	v, err := parseValue(metric.Label(), value)
	if err != nil {
		return "", 0, err
	}

	switch strings.ToLower(which) {
	case "intermediate", "i":
		metric.Set(&g.Intermediate, v)
	case "final", "f":
		metric.Set(&g.Final, v)
	default:
		return "", 0, fmt.Errorf("goal must be intermediate or final, got %q", which)
	}
	return metric, v, nil
}

// SetProfileField sets one health profile field in g from user text.
func SetProfileField(g *model.UserGoals, field, value string) error {
	switch strings.ToLower(field) {
	case "objective":
		o, err := model.ParseObjective(value)
		if err != nil {
			return err
		}
		g.Profile.Objective = o
	case "conditions":
		g.Profile.Conditions = value
	case "age":
		age, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || age <= 0 {
			return fmt.Errorf("age must be a positive whole number, got %q", value)
		}
		g.Profile.Age = age
	case "sex":
		sex, err := model.ParseSex(value)
		if err != nil {
			return err
		}
		g.Profile.Sex = sex
	case "height":
		h, err := parseValue("height", value)
		if err != nil {
			return err
		}
		g.Profile.HeightCm = h
	default:
		return fmt.Errorf("unknown profile field %q", field)
	}
	return nil
}

// parseValue parses a user-entered metric value.
func parseValue(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	if err := analytics.ValidateValue(name, v); err != nil {
		return 0, err
	}
	return v, nil
}
