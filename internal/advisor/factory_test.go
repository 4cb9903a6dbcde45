package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitfocus/internal/config"
	"fitfocus/internal/fitfocus"
)

func TestNewAdvisorFromConfig(t *testing.T) {
	t.Run("offline", func(t *testing.T) {
		a, err := NewAdvisorFromConfig(config.AdvisorConfig{Type: "offline"}, fitfocus.NewNopLogger())
		require.NoError(t, err)
		assert.IsType(t, Offline{}, a)
	})

	t.Run("gemini with key", func(t *testing.T) {
		t.Setenv(GeminiAPIKeyEnv, "key")
		a, err := NewAdvisorFromConfig(config.AdvisorConfig{}, fitfocus.NewNopLogger())
		require.NoError(t, err)
		chat, ok := a.(*Chat)
		require.True(t, ok, "got %T", a)
		assert.Equal(t, GeminiModel, chat.model)
		assert.Equal(t, "Salvadoran", chat.prompts.Cuisine)
	})

	t.Run("custom key env and model", func(t *testing.T) {
		t.Setenv("MY_AI_KEY", "key")
		a, err := NewAdvisorFromConfig(config.AdvisorConfig{Type: "openai", APIKeyEnv: "MY_AI_KEY", Model: "gpt-x"}, fitfocus.NewNopLogger())
		require.NoError(t, err)
		chat, ok := a.(*Chat)
		require.True(t, ok, "got %T", a)
		assert.Equal(t, "gpt-x", chat.model)
	})

	t.Run("missing key degrades to offline", func(t *testing.T) {
		t.Setenv(OpenAIAPIKeyEnv, "")
		logger := &warnCounter{}
		a, err := NewAdvisorFromConfig(config.AdvisorConfig{Type: "openai"}, logger)
		require.NoError(t, err)
		assert.IsType(t, Offline{}, a)
		assert.Equal(t, 1, logger.warns)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewAdvisorFromConfig(config.AdvisorConfig{Type: "oracle"}, fitfocus.NewNopLogger())
		assert.Error(t, err)
	})
}
