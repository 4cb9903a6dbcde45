package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fitfocus/internal/advisor"
	"fitfocus/internal/config"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
	"fitfocus/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig(t.TempDir())
	cfg.Advisor.Type = "offline"
	return cfg
}

func noPassphrase(string) (string, error) {
	return "", errors.New("passphrase should not be needed")
}

func openApp(t *testing.T, cfg *config.Config, passphrase PassphraseFunc) *FitApp {
	t.Helper()
	a, err := NewFitApp(context.Background(), cfg, "test", passphrase)
	if err != nil {
		t.Fatalf("NewFitApp() error = %v", err)
	}
	return a
}

func measurement(weight float64) fitfocus.MeasurementInput {
	return fitfocus.MeasurementInput{WeightLbs: weight, BodyFatPercent: 20, VisceralFat: 8, LeanMassLbs: 145, WaistCm: 90}
}

func TestFitApp_RecordMeasurement(t *testing.T) {
	ctx := context.Background()
	a := openApp(t, testConfig(t), noPassphrase)
	defer a.Close()

	for i, w := range []float64{180, 181} {
		res, err := a.RecordMeasurement(ctx, measurement(w))
		if err != nil {
			t.Fatalf("RecordMeasurement(%v) error = %v", w, err)
		}
		if res.Motivation != advisor.FallbackMotivation {
			t.Errorf("Motivation = %q, want fallback", res.Motivation)
		}
		if res.EasyWin != "" || res.Signal != "none" {
			t.Errorf("measurement %d: easy win %q signal %q, want none", i, res.EasyWin, res.Signal)
		}
	}

	res, err := a.RecordMeasurement(ctx, measurement(180))
	if err != nil {
		t.Fatalf("RecordMeasurement() error = %v", err)
	}
	if res.EasyWin != advisor.FallbackEasyWin {
		t.Errorf("EasyWin = %q, want %q", res.EasyWin, advisor.FallbackEasyWin)
	}
	if res.Signal != "stagnation" {
		t.Errorf("Signal = %q, want stagnation", res.Signal)
	}
	if res.Measurement.ID == "" {
		t.Error("measurement has no ID")
	}

	if _, err := a.RecordMeasurement(ctx, measurement(-5)); err == nil {
		t.Error("expected error for negative weight")
	}
	if got := len(a.Snapshot().Measurements); got != 3 {
		t.Errorf("len(Measurements) = %d, want 3", got)
	}

	d := a.Dashboard()
	if !d.HasData || d.Latest.WeightLbs != 180 {
		t.Errorf("Dashboard() = %+v", d)
	}
}

func TestFitApp_RecordMeasurementCancelled(t *testing.T) {
	a := openApp(t, testConfig(t), noPassphrase)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, w := range []float64{180, 181, 180} {
		res, err := a.RecordMeasurement(ctx, measurement(w))
		if err != nil {
			t.Fatalf("RecordMeasurement(%v) error = %v", w, err)
		}
		if res.Motivation != advisor.FallbackMotivation {
			t.Errorf("Motivation = %q, want fallback", res.Motivation)
		}
	}
	if got := len(a.Snapshot().Measurements); got != 3 {
		t.Errorf("len(Measurements) = %d, want 3", got)
	}
}

func TestFitApp_DefaultMeal(t *testing.T) {
	a := openApp(t, testConfig(t), noPassphrase)
	defer a.Close()

	tests := []struct {
		hour int
		want model.MealType
	}{
		{7, model.MealBreakfast},
		{12, model.MealLunch},
		{19, model.MealDinner},
		{23, model.MealSnack},
	}
	for _, tt := range tests {
		a.clock = testutil.NewStubClock(time.Date(2024, 1, 15, tt.hour, 0, 0, 0, time.Local))
		if got := a.DefaultMeal(); got != tt.want {
			t.Errorf("DefaultMeal() at %02d:00 = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestFitApp_Food(t *testing.T) {
	ctx := context.Background()
	a := openApp(t, testConfig(t), noPassphrase)
	defer a.Close()

	if got := a.AnalyzeToday(ctx); got != "" {
		t.Errorf("AnalyzeToday() with nothing logged = %q, want empty", got)
	}

	e, err := a.LogFood(ctx, model.MealBreakfast, "  eggs and beans ")
	if err != nil {
		t.Fatalf("LogFood() error = %v", err)
	}
	if e.Description != "eggs and beans" {
		t.Errorf("Description = %q", e.Description)
	}
	if _, err := a.LogFood(ctx, model.MealLunch, " "); !errors.Is(err, fitfocus.ErrEmptyDescription) {
		t.Errorf("LogFood(blank) error = %v, want ErrEmptyDescription", err)
	}

	if got := len(a.TodayEntries()); got != 1 {
		t.Errorf("len(TodayEntries()) = %d, want 1", got)
	}
	if got := a.AnalyzeToday(ctx); got != advisor.FallbackDietAnalysis {
		t.Errorf("AnalyzeToday() = %q", got)
	}
	if got := a.SuggestMeal(ctx, model.MealDinner); got != advisor.FallbackMealSuggestion {
		t.Errorf("SuggestMeal() = %q", got)
	}
}

func TestFitApp_UpdateGoals(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	a := openApp(t, cfg, noPassphrase)

	err := a.UpdateGoals(ctx, func(g *model.UserGoals) error {
		g.Final.WeightLbs = 150
		g.Profile.Age = 41
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateGoals() error = %v", err)
	}

	editErr := errors.New("bad edit")
	if err := a.UpdateGoals(ctx, func(*model.UserGoals) error { return editErr }); !errors.Is(err, editErr) {
		t.Errorf("UpdateGoals() error = %v, want the edit error", err)
	}
	if err := a.UpdateGoals(ctx, func(g *model.UserGoals) error { g.Profile.Age = 0; return nil }); !errors.Is(err, fitfocus.ErrInvalidProfile) {
		t.Errorf("UpdateGoals(age 0) error = %v, want ErrInvalidProfile", err)
	}
	if got := a.Snapshot().Goals.Profile.Age; got != 41 {
		t.Errorf("failed update changed goals: age = %d", got)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b := openApp(t, cfg, noPassphrase)
	defer b.Close()
	g := b.Snapshot().Goals
	if g.Final.WeightLbs != 150 || g.Profile.Age != 41 {
		t.Errorf("reloaded goals = %+v", g)
	}
}

func TestFitApp_CloseLogsRun(t *testing.T) {
	cfg := testConfig(t)
	a := openApp(t, cfg, noPassphrase)
	a.run.Fail()
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.LogDir, "fitfocus.log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	got := string(data)
	for _, want := range []string{"run started\tcommand=test", "run finished\tcommand=test\tstatus=error"} {
		if !strings.Contains(got, want) {
			t.Errorf("log missing %q:\n%s", want, got)
		}
	}
}

func TestFitApp_Shell(t *testing.T) {
	a := openApp(t, testConfig(t), noPassphrase)
	defer a.Close()

	var out strings.Builder
	in := strings.NewReader("food lunch pupusas\nexit\n")
	if err := a.Shell(context.Background(), in, &out); err != nil {
		t.Fatalf("Shell() error = %v", err)
	}
	if got := len(a.Snapshot().Food); got != 1 {
		t.Errorf("len(Food) = %d, want 1", got)
	}
	if !strings.Contains(out.String(), "Added to lunch: pupusas") {
		t.Errorf("shell output = %q", out.String())
	}
}

func TestFitApp_Encrypted(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Encryption.Enabled = true

	if _, err := NewFitApp(ctx, cfg, "test", noPassphrase); err == nil {
		t.Fatal("expected error when encryption is enabled without keys")
	}

	if err := SetupKeys(cfg, "correct horse"); err != nil {
		t.Fatalf("SetupKeys() error = %v", err)
	}
	if err := SetupKeys(cfg, "again"); err == nil {
		t.Error("SetupKeys() twice should fail")
	}

	prompts := 0
	passphrase := func(pass string) PassphraseFunc {
		return func(string) (string, error) {
			prompts++
			return pass, nil
		}
	}

	// Empty store: nothing to decrypt, so no prompt.
	a := openApp(t, cfg, passphrase("correct horse"))
	if _, err := a.RecordMeasurement(ctx, measurement(180)); err != nil {
		t.Fatalf("RecordMeasurement() error = %v", err)
	}
	a.Close()
	if prompts != 0 {
		t.Errorf("prompts = %d, want 0 for a run that only writes", prompts)
	}

	raw, err := os.ReadFile(filepath.Join(cfg.Store.DataDir, "measurements.json"))
	if err != nil {
		t.Fatalf("reading data file: %v", err)
	}
	if strings.Contains(string(raw), "weightLbs") {
		t.Error("data file contains plaintext")
	}

	if _, err := NewFitApp(ctx, cfg, "test", passphrase("wrong")); err == nil {
		t.Error("expected error opening with the wrong passphrase")
	}

	if err := ChangePassphrase(cfg, "correct horse", "battery staple"); err != nil {
		t.Fatalf("ChangePassphrase() error = %v", err)
	}
	if _, err := NewFitApp(ctx, cfg, "test", passphrase("correct horse")); err == nil {
		t.Error("old passphrase still works after change")
	}

	prompts = 0
	b := openApp(t, cfg, passphrase("battery staple"))
	defer b.Close()
	if prompts != 1 {
		t.Errorf("prompts = %d, want 1", prompts)
	}
	if got := b.Snapshot().Measurements; len(got) != 1 || got[0].WeightLbs != 180 {
		t.Errorf("decrypted measurements = %+v", got)
	}
}

func TestNewFitApp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"unknown store", func(c *config.Config) { c.Store.Type = "floppy" }},
		{"unknown advisor", func(c *config.Config) { c.Advisor.Type = "oracle" }},
		{"unknown log format", func(c *config.Config) { c.Log.Format = "xml" }},
		{"unknown encryption", func(c *config.Config) { c.Encryption.Enabled = true; c.Encryption.Type = "rot13" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.modify(cfg)
			if _, err := NewFitApp(context.Background(), cfg, "test", noPassphrase); err == nil {
				t.Error("NewFitApp() error = nil, want error")
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "FITFOCUS_TEST_ENV_A=from-file\nFITFOCUS_TEST_ENV_B=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FITFOCUS_TEST_ENV_B", "from-env")
	t.Cleanup(func() { os.Unsetenv("FITFOCUS_TEST_ENV_A") })

	if err := LoadEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := os.Getenv("FITFOCUS_TEST_ENV_A"); got != "from-file" {
		t.Errorf("A = %q, want from-file", got)
	}
	if got := os.Getenv("FITFOCUS_TEST_ENV_B"); got != "from-env" {
		t.Errorf("B = %q, want the existing value to win", got)
	}
}

func TestReadPassphrase_FromEnv(t *testing.T) {
	t.Setenv(PassphraseEnv, "s3cret")
	got, err := ReadPassphrase("Passphrase: ")
	if err != nil || got != "s3cret" {
		t.Errorf("ReadPassphrase() = %q, %v", got, err)
	}
	got, err = ReadNewPassphrase("New passphrase: ")
	if err != nil || got != "s3cret" {
		t.Errorf("ReadNewPassphrase() = %q, %v", got, err)
	}
}
