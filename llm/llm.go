package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/hasiholan/toba-guide/config"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Options carries provider selection plus the fixed sampling parameters the
// assistant runs with: greedy decoding (temperature 0), nominal top-p 0.9,
// and a bounded response length.
type Options struct {
	Provider string
	Model    string

	Temperature float32
	TopP        float32
	MaxTokens   int

	OllamaHost string
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
}

func NewClient(cfg config.Config) (Client, error) {
	opts := Options{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		Temperature: 0,
		TopP:        0.9,
		MaxTokens:   cfg.MaxAnswerTokens,
		OllamaHost:  cfg.OllamaHost,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Timeout:     cfg.RequestTimeout,
	}

	switch opts.Provider {
	case config.ProviderOllama:
		return NewOllamaClient(opts), nil
	case config.ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("openai-compatible provider selected but no API key set")
		}
		return NewOpenAIClient(opts), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", opts.Provider)
	}
}
