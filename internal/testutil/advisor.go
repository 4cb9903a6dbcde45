package testutil

import (
	"context"
	"sync"

	"fitfocus/internal/analytics"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
)

// FakeAdvisor returns canned replies and records every call.
// Gate, when non-nil, blocks each call until it is closed or ctx is done;
// a call released by ctx returns the Cancelled text.
type FakeAdvisor struct {
	Reply     string
	Cancelled string
	Gate      chan struct{}

	mu    sync.Mutex
	calls []AdvisorCall
}

// AdvisorCall is one recorded call.
type AdvisorCall struct {
	Method     string
	Motivation fitfocus.MotivationRequest
	Meal       model.MealType
	Entries    []model.FoodEntry
	Metric     string
	Direction  analytics.Direction
	Profile    model.HealthProfile
}

// NewFakeAdvisor creates a FakeAdvisor answering reply.
func NewFakeAdvisor(reply string) *FakeAdvisor {
	return &FakeAdvisor{Reply: reply, Cancelled: "cancelled"}
}

// Calls returns a copy of the recorded calls.
func (f *FakeAdvisor) Calls() []AdvisorCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AdvisorCall(nil), f.calls...)
}

// CallCount returns how many times method was called.
func (f *FakeAdvisor) CallCount(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *FakeAdvisor) answer(ctx context.Context, call AdvisorCall) string {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return f.Cancelled
		}
	}
	return f.Reply
}

func (f *FakeAdvisor) Motivation(ctx context.Context, req fitfocus.MotivationRequest) string {
	return f.answer(ctx, AdvisorCall{Method: "Motivation", Motivation: req, Profile: req.Profile})
}

func (f *FakeAdvisor) MealSuggestion(ctx context.Context, meal model.MealType, profile model.HealthProfile) string {
	return f.answer(ctx, AdvisorCall{Method: "MealSuggestion", Meal: meal, Profile: profile})
}

func (f *FakeAdvisor) DietAnalysis(ctx context.Context, entries []model.FoodEntry, profile model.HealthProfile) string {
	return f.answer(ctx, AdvisorCall{Method: "DietAnalysis", Entries: entries, Profile: profile})
}

func (f *FakeAdvisor) EasyWin(ctx context.Context, metric string, direction analytics.Direction, profile model.HealthProfile) string {
	return f.answer(ctx, AdvisorCall{Method: "EasyWin", Metric: metric, Direction: direction, Profile: profile})
}

var _ fitfocus.Advisor = (*FakeAdvisor)(nil)
