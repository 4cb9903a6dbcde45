package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"fitfocus/internal/analytics"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
)

// Service is the part of fitfocus.Service the shell drives.
type Service interface {
	AddMeasurement(ctx context.Context, snap *fitfocus.Snapshot, in fitfocus.MeasurementInput) (model.Measurement, error)
	AddFood(ctx context.Context, snap *fitfocus.Snapshot, meal model.MealType, description string) (model.FoodEntry, error)
	UpdateGoals(ctx context.Context, snap *fitfocus.Snapshot, goals model.UserGoals) error
	Motivate(ctx context.Context, goals model.UserGoals, current model.Measurement, previous []model.Measurement) string
	CheckTrend(ctx context.Context, snap *fitfocus.Snapshot, current string) (string, analytics.Signal)
	SuggestMeal(ctx context.Context, meal model.MealType, profile model.HealthProfile) string
	AnalyzeToday(ctx context.Context, snap *fitfocus.Snapshot) string
	Now() time.Time
}

var _ Service = (*fitfocus.Service)(nil)

// errExit ends the loop.
var errExit = errors.New("exit")

const shellHelp = `Commands:
  tab <dashboard|food|entry|settings>       switch screen
  measure <weight> <body fat> <visceral> <lean> <waist>
                                            record a measurement
  food [breakfast|lunch|dinner|snack] <text> log a meal (type defaults to the selected meal)
  suggest [type]                            ask for a meal suggestion
  analyze                                   analyse today's meals
  goal <intermediate|final> <metric> <value> edit a goal (metrics: weight, body_fat, visceral_fat, lean_mass, waist)
  profile <objective|conditions|age|sex|height> <value>
                                            edit the health profile
  save                                      save goals and profile
  help                                      show this help
  exit | quit                               leave`

// Shell is an interactive read-eval-print loop over one user's data.
type Shell struct {
	svc   Service
	snap  *fitfocus.Snapshot
	state State
	r     *Renderer

	// interrupt derives the context of one advisor call; Ctrl-C cancels the
	// call instead of quitting the shell.
	interrupt func(ctx context.Context) (context.Context, context.CancelFunc)
}

// NewShell creates a shell over snap, which must come from svc.
func NewShell(svc Service, snap *fitfocus.Snapshot, r *Renderer) *Shell {
	return &Shell{
		svc:   svc,
		snap:  snap,
		state: Update(NewState(snap.Goals, svc.Now()), Loaded{Goals: snap.Goals}),
		r:     r,
		interrupt: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}
}

// State returns the current presentation state.
func (s *Shell) State() State { return s.state }

func (s *Shell) dispatch(a Action) {
	s.state = Update(s.state, a)
}

func (s *Shell) render() {
	s.r.Render(s.state, s.snap, s.svc.Now())
}

// await runs one advisor call as a task and blocks until it resolves.
func (s *Shell) await(ctx context.Context, fn func(ctx context.Context) string) string {
	ctx, stop := s.interrupt(ctx)
	defer stop()
	return fitfocus.StartTask(ctx, fn).Wait()
}

// Run reads commands from in until EOF, exit or ctx is done. Command errors
// are printed and the loop continues.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.render()
	for {
		s.r.Printf("fitfocus:%s> ", s.state.Tab)
		if !scanner.Scan() {
			s.r.Printf("\n")
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		err := s.Exec(ctx, fields[0], fields[1:])
		if errors.Is(err, errExit) {
			s.r.Printf("Bye!\n")
			return nil
		}
		if err != nil {
			s.r.Printf("error: %v\n", err)
		}
	}
}

// Exec runs one command.
func (s *Shell) Exec(ctx context.Context, cmd string, args []string) error {
	switch strings.ToLower(cmd) {
	case "help", "?":
		s.r.Printf("%s\n", shellHelp)
		return nil
	case "tab":
		return s.tab(ctx, args)
	case "measure":
		return s.measure(ctx, args)
	case "food":
		return s.food(ctx, args)
	case "suggest":
		return s.suggest(ctx, args)
	case "analyze", "analyse":
		return s.analyze(ctx)
	case "goal":
		return s.goal(args)
	case "profile":
		return s.profile(args)
	case "save":
		return s.save(ctx)
	case "exit", "quit":
		return errExit
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (s *Shell) tab(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tab <dashboard|food|entry|settings>")
	}
	t, err := ParseTab(args[0])
	if err != nil {
		return err
	}
	s.dispatch(SelectTab{Tab: t})
	if t == TabFood && s.state.Suggestion == "" {
		s.fetchSuggestion(ctx)
	}
	s.render()
	return nil
}

func (s *Shell) measure(ctx context.Context, args []string) error {
	in, err := ParseMeasurement(args)
	if err != nil {
		return err
	}

	m, err := s.svc.AddMeasurement(ctx, s.snap, in)
	if err != nil {
		return err
	}
	s.dispatch(MeasurementAdded{})
	s.render()

	previous := s.snap.Measurements[:len(s.snap.Measurements)-1]
	goals := s.snap.Goals
	text := s.await(ctx, func(ctx context.Context) string {
		return s.svc.Motivate(ctx, goals, m, previous)
	})
	s.dispatch(MotivationReceived{Text: text})

	current := s.state.EasyWin
	win := s.await(ctx, func(ctx context.Context) string {
		w, _ := s.svc.CheckTrend(ctx, s.snap, current)
		return w
	})
	s.dispatch(EasyWinReceived{Text: win})
	s.render()
	return nil
}

func (s *Shell) food(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: food [type] <what you ate>")
	}
	meal := s.state.MealType
	if t, err := model.ParseMealType(args[0]); err == nil && len(args) > 1 {
		meal = t
		args = args[1:]
	}

	e, err := s.svc.AddFood(ctx, s.snap, meal, strings.Join(args, " "))
	if err != nil {
		return err
	}
	s.dispatch(FoodAdded{Entry: e})
	if s.state.Tab == TabFood {
		s.render()
	} else {
		s.r.Printf("%s\n", s.state.Notice)
	}
	return nil
}

func (s *Shell) suggest(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: suggest [breakfast|lunch|dinner|snack]")
	}
	if len(args) == 1 {
		t, err := model.ParseMealType(args[0])
		if err != nil {
			return err
		}
		s.dispatch(MealTypeSelected{Meal: t})
	}
	s.fetchSuggestion(ctx)
	s.r.Printf("Suggestion for your %s: %s\n", strings.ToLower(string(s.state.MealType)), s.state.Suggestion)
	return nil
}

func (s *Shell) fetchSuggestion(ctx context.Context) {
	s.dispatch(SuggestionRequested{})
	meal, profile := s.state.MealType, s.snap.Goals.Profile
	text := s.await(ctx, func(ctx context.Context) string {
		return s.svc.SuggestMeal(ctx, meal, profile)
	})
	s.dispatch(SuggestionReceived{Text: text})
}

func (s *Shell) analyze(ctx context.Context) error {
	text := s.await(ctx, func(ctx context.Context) string {
		return s.svc.AnalyzeToday(ctx, s.snap)
	})
	if text == "" {
		s.r.Printf("Nothing logged today.\n")
		return nil
	}
	s.dispatch(DietAnalysisReceived{Text: text})
	s.r.Printf("Analysis: %s\n", text)
	return nil
}

func (s *Shell) goal(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: goal <intermediate|final> <metric> <value>")
	}
	draft := s.state.Draft
	metric, v, err := SetGoal(&draft, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	s.dispatch(DraftChanged{Goals: draft})
	s.r.Printf("%s %s goal set to %s (unsaved)\n", metric.Label(), strings.ToLower(args[0]), withUnit(v, metric))
	return nil
}

func (s *Shell) profile(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: profile <objective|conditions|age|sex|height> <value>")
	}
	value := strings.Join(args[1:], " ")
	draft := s.state.Draft
	if err := SetProfileField(&draft, args[0], value); err != nil {
		return err
	}
	s.dispatch(DraftChanged{Goals: draft})
	s.r.Printf("profile %s set to %s (unsaved)\n", strings.ToLower(args[0]), value)
	return nil
}

func (s *Shell) save(ctx context.Context) error {
	if err := s.svc.UpdateGoals(ctx, s.snap, s.state.Draft); err != nil {
		return err
	}
	s.dispatch(GoalsUpdated{Goals: s.snap.Goals})
	s.render()
	return nil
}
