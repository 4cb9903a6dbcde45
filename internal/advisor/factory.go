package advisor

import (
	"fmt"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"fitfocus/internal/config"
	"fitfocus/internal/fitfocus"
)

// Provider defaults for [advisor] type.
const (
	GeminiBaseURL   = "https://generativelanguage.googleapis.com/v1beta/openai"
	GeminiModel     = "gemini-3-flash-preview"
	GeminiAPIKeyEnv = "GEMINI_API_KEY"

	OpenAIModel     = openai.GPT4oMini
	OpenAIAPIKeyEnv = "OPENAI_API_KEY"
)

// NewAdvisorFromConfig creates an Advisor based on the advisor config type.
// A chat provider without an API key degrades to Offline with a warning, so
// the tracker stays usable without network access.
func NewAdvisorFromConfig(cfg config.AdvisorConfig, logger fitfocus.Logger) (fitfocus.Advisor, error) {
	var baseURL, model, keyEnv string
	switch cfg.Type {
	case "gemini", "":
		baseURL, model, keyEnv = GeminiBaseURL, GeminiModel, GeminiAPIKeyEnv
	case "openai":
		baseURL, model, keyEnv = "", OpenAIModel, OpenAIAPIKeyEnv
	case "offline":
		return Offline{}, nil
	default:
		return nil, fmt.Errorf("unknown advisor type: %q", cfg.Type)
	}

	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	if cfg.Model != "" {
		model = cfg.Model
	}
	if cfg.APIKeyEnv != "" {
		keyEnv = cfg.APIKeyEnv
	}

	apiKey := os.Getenv(keyEnv)
	if apiKey == "" {
		logger.Warn("no API key set, advisor answers with fallback text", "env", keyEnv)
		return Offline{}, nil
	}

	language, cuisine := cfg.Language, cfg.Cuisine
	if language == "" {
		language = config.DefaultLanguage
	}
	if cuisine == "" {
		cuisine = config.DefaultCuisine
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = config.DefaultTimeoutSeconds
	}

	return NewChat(ChatOptions{
		APIKey:   apiKey,
		BaseURL:  baseURL,
		Model:    model,
		Timeout:  time.Duration(timeout) * time.Second,
		Language: language,
		Cuisine:  cuisine,
	}, logger), nil
}
