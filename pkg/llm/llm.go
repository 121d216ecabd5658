package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"
)

const defaultModel = "gpt-4o-mini"

// ErrEmptyCompletion is returned when the provider answers without choices.
var ErrEmptyCompletion = errors.New("llm returned no choices")

// Provider answers a single-turn prompt.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config selects the OpenAI-compatible endpoint.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// OpenAIProvider talks to any OpenAI-compatible chat completion API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewProvider returns nil when no API key is configured.
func NewProvider(cfg Config, logger *zap.Logger, extra ...option.RequestOption) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Warn("llm: LLM_API_KEY not set; assistant answers with local summaries")
		return nil
	}
	logger.Info("llm: OpenAI-compatible provider selected", zap.String("model", cfg.Model), zap.String("base_url", cfg.BaseURL))
	return NewOpenAIProvider(cfg, extra...)
}

// NewOpenAIProvider builds a provider from cfg.
func NewOpenAIProvider(cfg Config, extra ...option.RequestOption) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(cfg.MaxRetries)}
	if endpoint := strings.TrimSpace(cfg.BaseURL); endpoint != "" {
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	opts = append(opts, extra...)

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &OpenAIProvider{client: openai.NewClient(opts...), model: model}
}

// Complete sends a system and a user message and returns the first choice.
func (p *OpenAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
