package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitfocus/internal/analytics"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
	"fitfocus/internal/testutil"
)

func newTestShell(t *testing.T, reply string) (*Shell, *testutil.ServiceFixture, *bytes.Buffer) {
	t.Helper()
	f := testutil.NewServiceFixture(reply)
	snap, err := f.Service.Load(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	s := NewShell(f.Service, snap, NewPlainRenderer(&out, 80))
	// Signal handling is process-wide; tests use a plain cancellable child.
	s.interrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
		return context.WithCancel(ctx)
	}
	return s, f, &out
}

func run(t *testing.T, s *Shell, lines ...string) {
	t.Helper()
	require.NoError(t, s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n")))
}

func TestShell_MeasureFlow(t *testing.T) {
	s, f, out := newTestShell(t, "Nice work")

	run(t, s, "measure 180 20 8 145 90", "measure 181 20 8 145 90")
	assert.Equal(t, "Nice work", s.State().Motivation)
	assert.False(t, s.State().AILoading)
	assert.Empty(t, s.State().EasyWin, "two measurements never trigger a trend")
	assert.Equal(t, 2, f.Advisor.CallCount("Motivation"))

	calls := f.Advisor.Calls()
	last := calls[len(calls)-1].Motivation
	assert.Equal(t, 181.0, last.Current.WeightLbs)
	require.Len(t, last.History, 1)
	assert.Equal(t, 180.0, last.History[0].WeightLbs)

	run(t, s, "measure 180 20 8 145 90")
	assert.Equal(t, "Nice work", s.State().EasyWin)
	assert.Equal(t, 1, f.Advisor.CallCount("EasyWin"))
	assert.Contains(t, out.String(), `Motivation hack: "Nice work"`)

	// Still stagnant: the showing easy win is kept without another call.
	run(t, s, "measure 181 20 8 145 90")
	assert.Equal(t, 1, f.Advisor.CallCount("EasyWin"))

	// Progress clears it.
	run(t, s, "measure 175 20 8 145 90")
	assert.Empty(t, s.State().EasyWin)
	assert.Len(t, s.snap.Measurements, 5)
}

func TestShell_MeasureErrors(t *testing.T) {
	s, f, out := newTestShell(t, "ok")

	run(t, s, "measure 1 2", "measure x 2 3 4 5", "measure 180 -1 8 145 90", "measure 180 NaN 8 145 90")
	assert.Empty(t, s.snap.Measurements)
	assert.Equal(t, 0, f.Store.SaveCalls)
	assert.Equal(t, 0, f.Advisor.CallCount("Motivation"))

	text := out.String()
	assert.Contains(t, text, "error: usage: measure")
	assert.Contains(t, text, `error: weight: "x" is not a number`)
	assert.Contains(t, text, "error: body_fat: value must not be negative")
	assert.Contains(t, text, "error: body_fat: value is not a finite number")
}

func TestShell_SaveFailureKeepsSnapshot(t *testing.T) {
	s, f, out := newTestShell(t, "ok")
	f.Store.FailSave(fitfocus.NamespaceMeasurements)

	run(t, s, "measure 180 20 8 145 90")
	assert.Empty(t, s.snap.Measurements)
	assert.Contains(t, out.String(), testutil.ErrInjected.Error())
	assert.Equal(t, InitialMotivation, s.State().Motivation)
}

func TestShell_Food(t *testing.T) {
	s, f, out := newTestShell(t, "Try sopa de res")
	require.Equal(t, model.MealLunch, s.State().MealType)

	run(t, s, "food dinner pupusas de queso", "food two eggs", "food")
	require.Len(t, s.snap.Food, 2)
	assert.Equal(t, model.MealDinner, s.snap.Food[0].Type)
	assert.Equal(t, "pupusas de queso", s.snap.Food[0].Description)
	assert.Equal(t, model.MealLunch, s.snap.Food[1].Type)
	assert.Equal(t, "two eggs", s.snap.Food[1].Description)
	assert.Contains(t, out.String(), "Added to dinner: pupusas de queso")
	assert.Contains(t, out.String(), "error: usage: food")

	run(t, s, "analyze")
	assert.Equal(t, "Try sopa de res", s.State().DietAnalysis)
	calls := f.Advisor.Calls()
	assert.Len(t, calls[len(calls)-1].Entries, 2)
}

func TestShell_AnalyzeNothingToday(t *testing.T) {
	s, f, out := newTestShell(t, "ok")
	run(t, s, "analyse")
	assert.Contains(t, out.String(), "Nothing logged today.")
	assert.Equal(t, 0, f.Advisor.CallCount("DietAnalysis"))
}

func TestShell_Suggest(t *testing.T) {
	s, f, out := newTestShell(t, "Yuca frita")

	run(t, s, "suggest dinner")
	assert.Equal(t, model.MealDinner, s.State().MealType)
	assert.Equal(t, "Yuca frita", s.State().Suggestion)
	assert.Contains(t, out.String(), "Suggestion for your dinner: Yuca frita")
	assert.Equal(t, model.MealDinner, f.Advisor.Calls()[0].Meal)

	// Opening the food tab reuses the suggestion already showing.
	run(t, s, "tab food")
	assert.Equal(t, TabFood, s.State().Tab)
	assert.Equal(t, 1, f.Advisor.CallCount("MealSuggestion"))

	run(t, s, "suggest brunch")
	assert.Contains(t, out.String(), `error: meal type "brunch"`)
}

func TestShell_FoodTabFetchesSuggestion(t *testing.T) {
	s, f, _ := newTestShell(t, "Casamiento")
	run(t, s, "tab f")
	assert.Equal(t, "Casamiento", s.State().Suggestion)
	assert.Equal(t, model.MealLunch, f.Advisor.Calls()[0].Meal)
}

func TestShell_SavedProfileRefreshesSuggestion(t *testing.T) {
	s, f, _ := newTestShell(t, "Casamiento")
	run(t, s, "tab food")
	require.Equal(t, 1, f.Advisor.CallCount("MealSuggestion"))

	run(t, s, "tab settings", "profile conditions celiac", "save", "tab food")
	assert.Equal(t, 2, f.Advisor.CallCount("MealSuggestion"))
	calls := f.Advisor.Calls()
	assert.Equal(t, "celiac", calls[len(calls)-1].Profile.Conditions)
}

func TestShell_GoalsAndProfile(t *testing.T) {
	s, f, out := newTestShell(t, "ok")

	run(t, s,
		"tab settings",
		"goal final weight 150",
		"goal i waist 88",
		"profile age 41",
		"profile objective gain-muscle",
		"profile conditions type 2 diabetes",
		"profile height 182",
	)
	assert.Equal(t, 160.0, s.snap.Goals.Final.WeightLbs, "edits stay in the draft until saved")
	assert.Equal(t, 0, f.Store.SaveCalls)

	run(t, s, "save")
	g := s.snap.Goals
	assert.Equal(t, 150.0, g.Final.WeightLbs)
	assert.Equal(t, 88.0, g.Intermediate.WaistCm)
	assert.Equal(t, 41, g.Profile.Age)
	assert.Equal(t, model.ObjectiveGainMuscle, g.Profile.Objective)
	assert.Equal(t, "type 2 diabetes", g.Profile.Conditions)
	assert.Equal(t, 182.0, g.Profile.HeightCm)
	assert.Equal(t, TabDashboard, s.State().Tab)
	assert.Equal(t, GoalsSavedNotice, s.State().Notice)
	assert.Contains(t, out.String(), GoalsSavedNotice)

	reloaded, err := f.Service.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, g, reloaded.Goals)
}

func TestShell_GoalErrors(t *testing.T) {
	s, _, out := newTestShell(t, "ok")
	run(t, s,
		"goal final height 150",
		"goal next weight 150",
		"goal final weight heavy",
		"profile age -3",
		"profile sex robot",
		"profile mood happy",
	)
	text := out.String()
	assert.Contains(t, text, `error: metric "height"`)
	assert.Contains(t, text, "goal must be intermediate or final")
	assert.Contains(t, text, `error: Weight: "heavy" is not a number`)
	assert.Contains(t, text, "age must be a positive whole number")
	assert.Contains(t, text, `error: sex "robot"`)
	assert.Contains(t, text, `unknown profile field "mood"`)
	assert.Equal(t, model.DefaultGoals(), s.State().Draft)
}

func TestShell_InterruptCancelsOnlyTheCall(t *testing.T) {
	s, f, _ := newTestShell(t, "never")
	f.Advisor.Gate = make(chan struct{})
	s.interrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		return ctx, cancel
	}

	run(t, s, "measure 180 20 8 145 90", "food lunch rice")
	assert.Equal(t, "cancelled", s.State().Motivation)
	assert.False(t, s.State().AILoading)
	assert.Len(t, s.snap.Food, 1, "the shell keeps running after a cancelled call")
}

func TestShell_InterruptCancelsEasyWin(t *testing.T) {
	s, f, _ := newTestShell(t, "never")
	run(t, s, "measure 180 20 8 145 90", "measure 181 20 8 145 90")
	require.Equal(t, 0, f.Advisor.CallCount("EasyWin"))

	f.Advisor.Gate = make(chan struct{})
	s.interrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		return ctx, cancel
	}

	// The third weight stalls the trend; the easy-win call blocks until interrupted.
	run(t, s, "measure 180 20 8 145 90", "food lunch rice")
	assert.Equal(t, 1, f.Advisor.CallCount("EasyWin"))
	assert.Equal(t, "cancelled", s.State().EasyWin)
	assert.Len(t, s.snap.Measurements, 3)
	assert.Len(t, s.snap.Food, 1, "the shell keeps running after a cancelled easy win")
}

func TestShell_Commands(t *testing.T) {
	s, _, out := newTestShell(t, "ok")
	require.NoError(t, s.Run(context.Background(), strings.NewReader("help\n\nbogus\ntab nowhere\nexit\nfood lunch never\n")))

	text := out.String()
	assert.Contains(t, text, "Commands:")
	assert.Contains(t, text, `error: unknown command "bogus"`)
	assert.Contains(t, text, `error: unknown tab "nowhere"`)
	assert.True(t, strings.HasSuffix(text, "Bye!\n"))
	assert.Empty(t, s.snap.Food, "nothing runs after exit")
}

func TestShell_StopsOnCancelledContext(t *testing.T) {
	s, _, _ := newTestShell(t, "ok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Run(ctx, strings.NewReader("food lunch rice\n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.snap.Food)
}

func TestParseValue(t *testing.T) {
	v, err := parseValue("weight", " 180.5 ")
	require.NoError(t, err)
	assert.Equal(t, 180.5, v)

	_, err = parseValue("weight", "Inf")
	assert.ErrorIs(t, err, analytics.ErrNotFinite)
}
