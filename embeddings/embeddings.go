package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/hasiholan/toba-guide/config"
)

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Options struct {
	Provider  string
	Model     string
	Dimension int

	OllamaHost string
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
}

func NewEmbedder(cfg config.Config) (Embedder, error) {
	opts := Options{
		Provider:   cfg.Embeddings.Provider,
		Model:      cfg.Embeddings.Model,
		Dimension:  cfg.Embeddings.Dimension,
		OllamaHost: cfg.OllamaHost,
		APIKey:     cfg.Embeddings.APIKey,
		BaseURL:    cfg.Embeddings.BaseURL,
		Timeout:    cfg.RequestTimeout,
	}

	switch opts.Provider {
	case config.ProviderOllama:
		return NewOllamaEmbedder(opts), nil
	case config.ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("openai-compatible embeddings selected but no API key set")
		}
		return NewOpenAIEmbedder(opts), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", opts.Provider)
	}
}
