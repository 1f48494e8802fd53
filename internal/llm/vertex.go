package llm

import (
	"context"
	"fmt"
	"strings"

	"lexiguide/internal/domain"

	"cloud.google.com/go/vertexai/genai"
)

// VertexClient implements domain.LLMClient with Gemini on Vertex AI.
type VertexClient struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      domain.Logger
}

// NewVertexClient creates a Vertex AI client using application default credentials.
func NewVertexClient(ctx context.Context, projectID, location, model string, temperature float32, logger domain.Logger) (*VertexClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP_PROJECT_ID is required for the vertex provider")
	}
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}
	return &VertexClient{
		client:      client,
		model:       model,
		temperature: temperature,
		logger:      logger,
	}, nil
}

func (c *VertexClient) Model() string {
	return c.model
}

// Complete runs the prompt as a chat whose history holds the prior turns.
func (c *VertexClient) Complete(ctx context.Context, prompt domain.Prompt) (*domain.Completion, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.temperature)
	if prompt.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(prompt.System)},
		}
	}

	chat := model.StartChat()
	for _, m := range prompt.History {
		role := "user"
		if m.Role == domain.ChatRoleAssistant {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(prompt.User))
	if err != nil {
		return nil, fmt.Errorf("gemini %s call failed: %w", prompt.Kind, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, ErrEmptyCompletion
	}

	completion := &domain.Completion{Text: text, Model: c.model}
	if resp.UsageMetadata != nil {
		completion.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		completion.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return completion, nil
}

func (c *VertexClient) Close() error {
	return c.client.Close()
}
