package advisor

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"fitfocus/internal/analytics"
	"fitfocus/internal/fitfocus"
	"fitfocus/internal/model"
)

var errNoChoices = errors.New("response has no choices")
var errEmptyContent = errors.New("response content is empty")

// ChatOptions configures a Chat advisor.
type ChatOptions struct {
	APIKey     string
	BaseURL    string // OpenAI-compatible endpoint; go-openai's default when empty
	Model      string
	Timeout    time.Duration // per call; zero leaves it to ctx
	Language   string
	Cuisine    string
	HTTPClient *http.Client
}

// Chat talks to an OpenAI-compatible chat-completion endpoint. One request
// per call, no retries; every failure resolves to the fallback text.
type Chat struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	prompts Prompter
	logger  fitfocus.Logger
}

var _ fitfocus.Advisor = (*Chat)(nil)

// NewChat creates a Chat advisor.
func NewChat(opts ChatOptions, logger fitfocus.Logger) *Chat {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	return &Chat{
		client:  openai.NewClientWithConfig(cfg),
		model:   opts.Model,
		timeout: opts.Timeout,
		prompts: Prompter{Language: opts.Language, Cuisine: opts.Cuisine},
		logger:  logger,
	}
}

// Motivation comments on the latest measurement against the goals.
func (c *Chat) Motivation(ctx context.Context, req fitfocus.MotivationRequest) string {
	return c.complete(ctx, "motivation", c.prompts.Motivation(req), FallbackMotivation)
}

// MealSuggestion proposes a dish for meal.
func (c *Chat) MealSuggestion(ctx context.Context, meal model.MealType, profile model.HealthProfile) string {
	return c.complete(ctx, "meal_suggestion", c.prompts.MealSuggestion(meal, profile), FallbackMealSuggestion)
}

// DietAnalysis reviews the given meals against the profile.
func (c *Chat) DietAnalysis(ctx context.Context, entries []model.FoodEntry, profile model.HealthProfile) string {
	return c.complete(ctx, "diet_analysis", c.prompts.DietAnalysis(entries, profile), FallbackDietAnalysis)
}

// EasyWin suggests one small habit after a stalled or reversed trend.
func (c *Chat) EasyWin(ctx context.Context, metric string, direction analytics.Direction, profile model.HealthProfile) string {
	return c.complete(ctx, "easy_win", c.prompts.EasyWin(metric, direction, profile), FallbackEasyWin)
}

func (c *Chat) complete(ctx context.Context, call, prompt, fallback string) string {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.ask(ctx, prompt)
	if err != nil {
		c.logger.Warn("advisor call failed, using fallback", "call", call, "model", c.model, "error", err)
		return fallback
	}
	c.logger.Debug("advisor call completed", "call", call, "model", c.model, "elapsed", time.Since(start).String())
	return text
}

func (c *Chat) ask(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errEmptyContent
	}
	return text, nil
}
