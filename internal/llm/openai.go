// Package llm adapts chat-completion providers to domain.LLMClient and holds
// the prompt templates used by the analysis, Q&A and dictionary services.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexiguide/internal/domain"

	"github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the provider answers with no text.
var ErrEmptyCompletion = errors.New("empty response from model")

// chatCompleter is the subset of *openai.Client used here.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIConfig configures the OpenAI client
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string // optional, for OpenAI-compatible gateways
	Model       string
	Temperature float32
	MaxRetries  int
	MaxTokens   int
	RetryDelay  time.Duration
}

// OpenAIClient implements domain.LLMClient with go-openai.
type OpenAIClient struct {
	api    chatCompleter
	config OpenAIConfig
	logger domain.Logger
}

// NewOpenAIClient creates a client from an API key and optional base URL.
func NewOpenAIClient(cfg OpenAIConfig, logger domain.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return newOpenAIClientWithAPI(openai.NewClientWithConfig(clientCfg), cfg, logger), nil
}

func newOpenAIClientWithAPI(api chatCompleter, cfg OpenAIConfig, logger domain.Logger) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1500
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	return &OpenAIClient{api: api, config: cfg, logger: logger}
}

func (c *OpenAIClient) Model() string {
	return c.config.Model
}

// Complete sends the prompt, retrying failed or empty responses up to MaxRetries times.
func (c *OpenAIClient) Complete(ctx context.Context, prompt domain.Prompt) (*domain.Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		Messages:    toOpenAIMessages(prompt),
	}

	var lastErr error
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * c.config.RetryDelay):
			}
		}

		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, fmt.Errorf("openai %s: %w", prompt.Kind, ctx.Err())
			}
			c.logger.Warn("OpenAI request failed, retrying",
				"kind", prompt.Kind, "attempt", attempt, "max_retries", c.config.MaxRetries, "error", err)
			continue
		}

		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			lastErr = ErrEmptyCompletion
			continue
		}

		model := resp.Model
		if model == "" {
			model = c.config.Model
		}
		return &domain.Completion{
			Text:             strings.TrimSpace(resp.Choices[0].Message.Content),
			Model:            model,
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		}, nil
	}

	return nil, fmt.Errorf("openai %s failed after %d attempts: %w", prompt.Kind, c.config.MaxRetries, lastErr)
}

func toOpenAIMessages(prompt domain.Prompt) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(prompt.History)+2)
	if prompt.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: prompt.System})
	}
	for _, m := range prompt.History {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.User})
	return msgs
}
