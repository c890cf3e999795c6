package llm

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type openAIClient struct {
	client *openai.Client
	opts   Options
}

// NewOpenAIClient talks to any OpenAI-compatible chat endpoint; the base URL
// selects the actual provider (OpenRouter by default).
func NewOpenAIClient(opts Options) Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &openAIClient{
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
	}
}

func (c *openAIClient) Generate(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.opts.Model,
		Temperature: c.opts.Temperature,
		TopP:        c.opts.TopP,
		MaxTokens:   c.opts.MaxTokens,
	}
	if req.Temperature == 0 {
		// omitempty would drop a zero temperature and the endpoint would
		// fall back to its default; the smallest float keeps it greedy.
		req.Temperature = math.SmallestNonzeroFloat32
	}

	req.Messages = make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
