package ui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"fitfocus/internal/analytics"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
)

const (
	defaultWidth = 80
	minChartCols = 8
	barWidth     = 20
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiBlue   = "\033[34m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
)

var severityColor = map[analytics.Severity]string{
	analytics.SeverityLow:      ansiBlue,
	analytics.SeverityNormal:   ansiGreen,
	analytics.SeverityElevated: ansiYellow,
	analytics.SeverityHigh:     ansiRed,
}

// Renderer writes screens as plain text. Colour is only used on terminals.
type Renderer struct {
	w     io.Writer
	width int
	color bool
}

// NewRenderer sizes output to w when it is a terminal. NO_COLOR disables colour.
func NewRenderer(w io.Writer) *Renderer {
	r := &Renderer{w: w, width: defaultWidth}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			r.width = cols
		}
		r.color = os.Getenv("NO_COLOR") == ""
	}
	return r
}

// NewPlainRenderer writes uncoloured output of a fixed width.
func NewPlainRenderer(w io.Writer, width int) *Renderer {
	return &Renderer{w: w, width: width}
}

func (r *Renderer) paint(code, s string) string {
	if !r.color || code == "" {
		return s
	}
	return code + s + ansiReset
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Printf writes a free-form line, used by the shell for confirmations and errors.
func (r *Renderer) Printf(format string, args ...any) {
	r.printf(format, args...)
}

// Render draws the header, the coach card and the active tab. now decides
// which meals count as today's.
func (r *Renderer) Render(s State, snap *fitfocus.Snapshot, now time.Time) {
	r.header(s, snap.Goals.Profile)
	if s.EasyWin != "" && s.Tab == TabDashboard {
		r.printf("%s %q\n  Small wins, big changes.\n\n", r.paint(ansiYellow+ansiBold, "Motivation hack:"), s.EasyWin)
	}
	r.coach(s)
	if s.Notice != "" {
		r.printf("%s\n\n", r.paint(ansiGreen, s.Notice))
	}

	switch s.Tab {
	case TabDashboard:
		r.Dashboard(fitfocus.BuildDashboard(snap))
	case TabFood:
		r.Food(s, fitfocus.TodayEntries(snap.Food, now), snap.Goals.Profile)
	case TabEntry:
		r.EntryForm()
	case TabSettings:
		r.Settings(s.Draft)
	}
}

func (r *Renderer) header(s State, p model.HealthProfile) {
	tabs := make([]string, len(Tabs))
	for i, t := range Tabs {
		if t == s.Tab {
			tabs[i] = r.paint(ansiBold, "["+string(t)+"]")
		} else {
			tabs[i] = " " + string(t) + " "
		}
	}
	r.printf("%s  %s\n%s\n\n", r.paint(ansiBold, "FitFocus"), strings.ToUpper(string(p.Objective)), strings.Join(tabs, " "))
}

func (r *Renderer) coach(s State) {
	if s.AILoading {
		r.printf("AI coach: thinking...\n\n")
		return
	}
	r.printf("AI coach: %q\n\n", s.Motivation)
}

// Dashboard draws the BMI card, latest metrics, goal progress and charts.
func (r *Renderer) Dashboard(d fitfocus.Dashboard) {
	if !d.HasData {
		r.printf("No measurements yet. Record one with: measure <weight> <body fat> <visceral> <lean> <waist>\n")
		return
	}

	r.printf("BMI %s  %s\n", r.paint(ansiBold, fmt.Sprintf("%.1f", d.BMI)),
		r.paint(severityColor[d.Category.Severity], strings.ToUpper(d.Category.Label)))
	r.printf("Latest (%s): ", d.Latest.Date.Local().Format("02 Jan 2006"))
	parts := make([]string, 0, len(model.AllMetrics))
	for _, m := range model.AllMetrics {
		parts = append(parts, fmt.Sprintf("%s %s", m.Label(), withUnit(m.Of(d.Latest), m)))
	}
	r.printf("%s\n\n", strings.Join(parts, ", "))

	r.progress("Progress toward final goal", d.FinalProgress)
	r.progress("Progress toward intermediate goal", d.IntermediateProgress)

	cols := r.width - 36
	if cols < minChartCols {
		cols = minChartCols
	}
	for _, c := range d.Charts {
		values := make([]float64, len(c.Points))
		for i, p := range c.Points {
			values[i] = p.Value
		}
		first, last := c.Points[0], c.Points[len(c.Points)-1]
		r.printf("%-13s %s  %s %s -> %s %s\n", c.Metric.Label(), Sparkline(values, cols),
			first.Date, trim(first.Value), last.Date, withUnit(last.Value, c.Metric))
	}
}

func (r *Renderer) progress(title string, ps []fitfocus.Progress) {
	r.printf("%s\n", title)
	for _, p := range ps {
		r.printf("  %-10s %s %3.0f%%  %s -> %s (goal %s)\n", p.Metric.Label(),
			r.paint(ansiBlue, ProgressBar(p.Percent, barWidth)), safePct(p.Percent),
			trim(p.Start), trim(p.Current), withUnit(p.Target, p.Metric))
	}
	r.printf("\n")
}

// Food draws the suggestion card, today's meals and the diet analysis.
func (r *Renderer) Food(s State, today []model.FoodEntry, p model.HealthProfile) {
	r.printf("Nutrition plan (conditions: %s)\n", p.Conditions)
	r.printf("Suggestion for your %s: ", strings.ToLower(string(s.MealType)))
	switch {
	case s.SuggestionLoading:
		r.printf("thinking...\n\n")
	case s.Suggestion == "":
		r.printf("run `suggest` for an idea\n\n")
	default:
		r.printf("%q\n\n", s.Suggestion)
	}

	r.printf("Today's meals\n")
	if len(today) == 0 {
		r.printf("  nothing logged yet. Log with: food [type] <what you ate>\n")
	}
	for _, e := range today {
		r.printf("  %s  %-9s %s\n", e.Date.Local().Format("15:04"), e.Type, e.Description)
	}
	if s.DietAnalysis != "" {
		r.printf("\nAnalysis: %s\n", s.DietAnalysis)
	}
}

// EntryForm lists the measurement fields.
func (r *Renderer) EntryForm() {
	r.printf("New measurement\n")
	for _, m := range model.AllMetrics {
		unit := m.Unit()
		if unit == "" {
			unit = "level"
		}
		r.printf("  %-13s (%s)\n", m.Label(), unit)
	}
	r.printf("\nRecord with: measure <weight> <body fat> <visceral> <lean> <waist>\n")
}

// Settings draws the goals and profile being edited.
func (r *Renderer) Settings(g model.UserGoals) {
	r.printf("%-13s %12s %12s\n", "Goal", "intermediate", "final")
	for _, m := range model.AllMetrics {
		r.printf("%-13s %12s %12s\n", m.Label(), withUnit(m.Target(g.Intermediate), m), withUnit(m.Target(g.Final), m))
	}
	p := g.Profile
	r.printf("\nProfile\n  objective   %s\n  conditions  %s\n  age         %d\n  sex         %s\n  height      %s cm\n",
		p.Objective, p.Conditions, p.Age, p.Sex, trim(p.HeightCm))
	r.printf("\nEdit with: goal <intermediate|final> <metric> <value>, profile <field> <value>; then save\n")
}

// MeasurementList prints every measurement, oldest first.
func (r *Renderer) MeasurementList(ms []model.Measurement) {
	if len(ms) == 0 {
		r.printf("No measurements yet.\n")
		return
	}
	r.printf("%-17s %8s %8s %9s %8s %8s\n", "date", "weight", "fat %", "visceral", "lean", "waist")
	for _, m := range ms {
		r.printf("%-17s %8s %8s %9s %8s %8s\n", m.Date.Local().Format("2006-01-02 15:04"),
			trim(m.WeightLbs), trim(m.BodyFatPercent), trim(m.VisceralFat), trim(m.LeanMassLbs), trim(m.WaistCm))
	}
}

// Sparkline draws values as block characters, one per value. Only the most
// recent width values are drawn.
func Sparkline(values []float64, width int) string {
	const blocks = "▁▂▃▄▅▆▇█"
	runes := []rune(blocks)
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := len(runes) / 2
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(len(runes)-1)))
		}
		b.WriteRune(runes[idx])
	}
	return b.String()
}

// ProgressBar draws pct (0-100) as a bar of width cells.
func ProgressBar(pct float64, width int) string {
	filled := int(math.Round(safePct(pct) / 100 * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func safePct(pct float64) float64 {
	if math.IsNaN(pct) {
		return 0
	}
	return math.Max(0, math.Min(100, pct))
}

func trim(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*10)/10)
}

func withUnit(v float64, m model.Metric) string {
	if m.Unit() == "" {
		return trim(v)
	}
	if m.Unit() == "%" {
		return trim(v) + "%"
	}
	return trim(v) + " " + m.Unit()
}
