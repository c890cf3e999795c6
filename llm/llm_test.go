package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasiholan/toba-guide/config"
)

func TestNewClientOllama(t *testing.T) {
	cfg := config.Config{
		LLM:        config.LLMConfig{Provider: config.ProviderOllama, Model: "llama3.1:8b"},
		OllamaHost: "http://localhost:11434",
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClientOpenAIRequiresAPIKey(t *testing.T) {
	cfg := config.Config{
		LLM: config.LLMConfig{Provider: config.ProviderOpenAI, Model: "deepseek/deepseek-r1-0528:free"},
	}

	_, err := NewClient(cfg)
	require.Error(t, err)
}

func TestNewClientOpenAIWithKey(t *testing.T) {
	cfg := config.Config{
		LLM: config.LLMConfig{
			Provider: config.ProviderOpenAI,
			Model:    "deepseek/deepseek-r1-0528:free",
			APIKey:   "test-key",
			BaseURL:  "https://openrouter.ai/api/v1",
		},
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClientUnknownProvider(t *testing.T) {
	cfg := config.Config{LLM: config.LLMConfig{Provider: "bogus"}}
	_, err := NewClient(cfg)
	require.ErrorContains(t, err, "unknown llm provider")
}
