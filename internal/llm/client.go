// Package llm provides the remote model client used by the model-backed
// review strategy, plus parsing of the model's structured output.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/luxmikant/ryzl/internal/config"
)

// Response is one model generation together with its usage accounting.
type Response struct {
	Content          string
	TokensPrompt     int
	TokensCompletion int
	LatencyMS        float64
}

// Client defines the contract for a remote model provider. Generate must
// honor the context deadline and must not be called while holding any lock.
type Client interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (*Response, error)
}

// NewFromConfig builds the model client selected by LLM_PROVIDER. The "mock"
// provider is deterministic and needs no credentials, which makes it the safe
// choice for tests and local development.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (Client, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "mock":
		return NewMockClient(), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

type openAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewOpenAIClient wraps the go-openai chat completion API behind the Client
// interface with a bounded per-request timeout.
func NewOpenAIClient(apiKey, model string, timeout time.Duration, logger *slog.Logger) Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &openAIClient{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

func (c *openAIClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	started := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	latency := float64(time.Since(started).Milliseconds())
	if err != nil {
		c.logger.Error("model generation failed", "model", c.model, "error", err)
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	return &Response{
		Content:          resp.Choices[0].Message.Content,
		TokensPrompt:     resp.Usage.PromptTokens,
		TokensCompletion: resp.Usage.CompletionTokens,
		LatencyMS:        latency,
	}, nil
}
