package app

import (
	"context"
	"fmt"
	"io"

	"fitfocus/internal/advisor"
	"fitfocus/internal/analytics"
	"fitfocus/internal/config"
	"fitfocus/internal/encryption"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
	"fitfocus/internal/store"
	"fitfocus/internal/ui"
)

// PassphraseFunc asks the user for the passphrase protecting the private key.
type PassphraseFunc func(prompt string) (string, error)

// FitApp is the application layer between the CLI and fitfocus.Service.
// It constructs all dependencies from config, loads the user's data once,
// exposes high-level operations for the one-shot commands and the shell,
// and releases the store and log on Close.
type FitApp struct {
	cfg       *config.Config
	store     fitfocus.Store
	service   *fitfocus.Service
	snap      *fitfocus.Snapshot
	logger    fitfocus.Logger
	logCloser io.Closer
	clock     fitfocus.Clock
	run       *Run
}

// NewFitApp creates a fully wired FitApp from the given config.
// command identifies the CLI command being run (e.g. "measure add", "shell").
// passphrase is only called when encryption is enabled and stored data is read.
// The caller must call Close when done.
func NewFitApp(ctx context.Context, cfg *config.Config, command string, passphrase PassphraseFunc) (*FitApp, error) {
	cfg = cfg.WithDefaults()
	clock := fitfocus.RealClock{}
	run := NewRun(command, clock)

	logger, logCloser, err := newLogger(cfg.Log, cfg.LogDir, run.ID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	st, err := store.NewStoreFromConfig(ctx, cfg.Store)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("creating store: %w", err)
	}

	if cfg.Encryption.Enabled {
		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			st.Close()
			logCloser.Close()
			return nil, fmt.Errorf("creating encryptor: %w", err)
		}
		if !enc.IsConfigured() {
			st.Close()
			logCloser.Close()
			return nil, fmt.Errorf("encryption is enabled but no keys exist: run `fitfocus keys init`")
		}
		st = store.NewEncryptedStore(st, enc, func() (fitfocus.DecryptionContext, error) {
			p, err := passphrase("Passphrase: ")
			if err != nil {
				return nil, err
			}
			return enc.Unlock(p)
		})
	}

	adv, err := advisor.NewAdvisorFromConfig(cfg.Advisor, logger)
	if err != nil {
		st.Close()
		logCloser.Close()
		return nil, fmt.Errorf("creating advisor: %w", err)
	}

	svc := fitfocus.NewService(st, adv, logger, clock, fitfocus.UUIDGenerator{})
	snap, err := svc.Load(ctx)
	if err != nil {
		st.Close()
		logCloser.Close()
		return nil, fmt.Errorf("loading data: %w", err)
	}

	logger.Info("run started", "command", command, "store", cfg.Store.Type, "advisor", cfg.Advisor.Type)

	return &FitApp{
		cfg:       cfg,
		store:     st,
		service:   svc,
		snap:      snap,
		logger:    logger,
		logCloser: logCloser,
		clock:     clock,
		run:       run,
	}, nil
}

// Config returns the effective config, with defaults applied.
func (a *FitApp) Config() *config.Config { return a.cfg }

// Snapshot returns the loaded data. It is updated in place by every operation.
func (a *FitApp) Snapshot() *fitfocus.Snapshot { return a.snap }

// MeasurementResult is what recording a measurement produces beyond the
// measurement itself.
type MeasurementResult struct {
	Measurement model.Measurement
	Motivation  string
	EasyWin     string // empty unless the trend detector fired
	Signal      string // trend direction, "none" when not triggered
}

// RecordMeasurement saves a measurement, then asks for a motivational message
// and runs trend detection, as the dashboard does after each entry.
func (a *FitApp) RecordMeasurement(ctx context.Context, in fitfocus.MeasurementInput) (MeasurementResult, error) {
	m, err := a.service.AddMeasurement(ctx, a.snap, in)
	if err != nil {
		a.run.Fail()
		return MeasurementResult{}, err
	}

	previous := a.snap.Measurements[:len(a.snap.Measurements)-1]
	res := MeasurementResult{Measurement: m}
	res.Motivation = fitfocus.StartTask(ctx, func(ctx context.Context) string {
		return a.service.Motivate(ctx, a.snap.Goals, m, previous)
	}).Wait()

	var sig analytics.Signal
	res.EasyWin = fitfocus.StartTask(ctx, func(ctx context.Context) string {
		var win string
		win, sig = a.service.CheckTrend(ctx, a.snap, "")
		return win
	}).Wait()
	res.Signal = string(sig.Direction)
	return res, nil
}

// DefaultMeal is the meal type for the current hour of the app's clock.
func (a *FitApp) DefaultMeal() model.MealType {
	return model.MealTypeForHour(a.clock.Now().Hour())
}

// LogFood records a meal.
func (a *FitApp) LogFood(ctx context.Context, meal model.MealType, description string) (model.FoodEntry, error) {
	e, err := a.service.AddFood(ctx, a.snap, meal, description)
	if err != nil {
		a.run.Fail()
	}
	return e, err
}

// SuggestMeal asks for a dish for meal.
func (a *FitApp) SuggestMeal(ctx context.Context, meal model.MealType) string {
	return a.service.SuggestMeal(ctx, meal, a.snap.Goals.Profile)
}

// AnalyzeToday analyzes today's meals. It is empty when nothing was logged today.
func (a *FitApp) AnalyzeToday(ctx context.Context) string {
	return a.service.AnalyzeToday(ctx, a.snap)
}

// TodayEntries returns the meals logged today.
func (a *FitApp) TodayEntries() []model.FoodEntry {
	return fitfocus.TodayEntries(a.snap.Food, a.clock.Now())
}

// UpdateGoals applies edit to a copy of the current goals and saves the result.
func (a *FitApp) UpdateGoals(ctx context.Context, edit func(*model.UserGoals) error) error {
	goals := a.snap.Goals
	if err := edit(&goals); err != nil {
		a.run.Fail()
		return err
	}
	if err := a.service.UpdateGoals(ctx, a.snap, goals); err != nil {
		a.run.Fail()
		return err
	}
	return nil
}

// Dashboard computes the dashboard view.
func (a *FitApp) Dashboard() fitfocus.Dashboard {
	return fitfocus.BuildDashboard(a.snap)
}

// Shell runs the interactive shell reading commands from in and drawing to out.
func (a *FitApp) Shell(ctx context.Context, in io.Reader, out io.Writer) error {
	sh := ui.NewShell(a.service, a.snap, ui.NewRenderer(out))
	if err := sh.Run(ctx, in); err != nil {
		a.run.Fail()
		return err
	}
	return nil
}

// Close logs the end of the run and closes the store and the log.
func (a *FitApp) Close() error {
	var firstErr error

	a.logger.Info("run finished", "command", a.run.Command, "status", a.run.Status, "elapsed", a.run.Elapsed(a.clock).String())

	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}
	if err := a.logCloser.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing log: %w", err)
	}
	return firstErr
}
