package advisor

import (
	"fmt"
	"strings"

	"fitfocus/internal/analytics"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
)

const systemPrompt = "You are an experienced health, fitness and nutrition coach. " +
	"Answer with plain text only, no markdown."

// Prompter builds the user prompt for each advisor call.
type Prompter struct {
	Language string // language the reply must be written in
	Cuisine  string // cuisine dishes are drawn from
}

func (p Prompter) profileLine(profile model.HealthProfile) string {
	return fmt.Sprintf("Age: %d, Sex: %s, Height: %s cm, Objective: %s, Conditions: %s.",
		profile.Age, profile.Sex, num(profile.HeightCm), profile.Objective, conditions(profile))
}

// Motivation asks for a short paragraph on the latest measurement.
func (p Prompter) Motivation(req fitfocus.MotivationRequest) string {
	var b strings.Builder
	b.WriteString("Act as a health and fitness expert.\n\n")
	fmt.Fprintf(&b, "USER PROFILE:\n%s\n\n", p.profileLine(req.Profile))

	c := req.Current
	fmt.Fprintf(&b, "TODAY'S DATA:\nWeight: %s lbs, Body fat: %s%%, Visceral fat: %s, Lean mass: %s lbs, Waist: %s cm.\n\n",
		num(c.WeightLbs), num(c.BodyFatPercent), num(c.VisceralFat), num(c.LeanMassLbs), num(c.WaistCm))

	b.WriteString("RECENT HISTORY:\n")
	if len(req.History) == 0 {
		b.WriteString("No previous records.\n")
	}
	for _, m := range req.History {
		fmt.Fprintf(&b, "- Date: %s, Weight: %s lbs, Body fat: %s%%, Waist: %s cm\n",
			m.Date.Format("2006-01-02"), num(m.WeightLbs), num(m.BodyFatPercent), num(m.WaistCm))
	}

	fmt.Fprintf(&b, "\nGOALS:\nIntermediate: %s\nFinal: %s\n\n", goalLine(req.Intermediate), goalLine(req.Final))

	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("1. Analyse the trend considering age, sex and objective.\n")
	if conditions(req.Profile) != "none" {
		fmt.Fprintf(&b, "2. The user reports %q; give one specific, empathetic piece of advice about it.\n", req.Profile.Conditions)
	} else {
		b.WriteString("2. Give one specific piece of advice for the next week.\n")
	}
	b.WriteString("3. Say whether the progress is healthy for this profile.\n\n")
	fmt.Fprintf(&b, "Format: one direct paragraph in %s. At most 100 words.", p.Language)
	return b.String()
}

// MealSuggestion asks for one dish for the meal.
func (p Prompter) MealSuggestion(meal model.MealType, profile model.HealthProfile) string {
	return fmt.Sprintf("As an expert nutritionist, suggest one typical %s dish for %s.\n"+
		"PROFILE: %s\n"+
		"The suggestion must suit the user's age and metabolic objective.\n"+
		"At most 2 sentences in %s.",
		p.Cuisine, strings.ToLower(string(meal)), p.profileLine(profile), p.Language)
}

// DietAnalysis asks for quick advice on a day's entries.
func (p Prompter) DietAnalysis(entries []model.FoodEntry, profile model.HealthProfile) string {
	items := make([]string, len(entries))
	for i, e := range entries {
		items[i] = fmt.Sprintf("%s: %s", e.Type, e.Description)
	}
	return fmt.Sprintf("Analyse what this user ate today: %s.\n"+
		"PROFILE: %s\n"+
		"Give one quick tip about key nutrients for their age and objective.\n"+
		"At most 2 sentences in %s.",
		strings.Join(items, ", "), p.profileLine(profile), p.Language)
}

// EasyWin asks for one small goal after a stalled or reversed trend.
func (p Prompter) EasyWin(metric string, direction analytics.Direction, profile model.HealthProfile) string {
	trend := "a plateau"
	if direction == analytics.DirectionRegression {
		trend = "a setback"
	}
	return fmt.Sprintf("The user (%s, %d years old, objective: %s) shows %s in %s.\n"+
		"Suggest one very concrete, easy-to-achieve goal to regain motivation.\n"+
		"At most 1 short sentence in %s.",
		profile.Sex, profile.Age, profile.Objective, trend, metric, p.Language)
}

func goalLine(g model.Goal) string {
	return fmt.Sprintf("Weight %s lbs, Body fat %s%%, Visceral fat %s, Lean mass %s lbs, Waist %s cm",
		num(g.WeightLbs), num(g.BodyFatPercent), num(g.VisceralFat), num(g.LeanMassLbs), num(g.WaistCm))
}

func conditions(p model.HealthProfile) string {
	c := strings.TrimSpace(p.Conditions)
	if c == "" || strings.EqualFold(c, "none") {
		return "none"
	}
	return c
}

// num formats without trailing zeros: 180 -> "180", 20.5 -> "20.5".
func num(v float64) string {
	return fmt.Sprintf("%g", v)
}
