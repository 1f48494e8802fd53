package domain

import "context"

// PromptKind names a prompt template; it labels logs and metrics.
type PromptKind string

const (
	PromptAnalysis          PromptKind = "analysis"
	PromptTermExtraction    PromptKind = "term_extraction"
	PromptQuestion          PromptKind = "question"
	PromptDictionaryAugment PromptKind = "dictionary_augment"
	PromptDictionaryDefine  PromptKind = "dictionary_define"
)

// PromptMessage is a prior conversation turn. Role is ChatRoleUser or ChatRoleAssistant.
type PromptMessage struct {
	Role    string
	Content string
}

// Prompt is a single chat-completion request.
type Prompt struct {
	Kind    PromptKind
	System  string
	History []PromptMessage
	User    string
}

// Completion is the model's reply.
type Completion struct {
	Text             string `json:"text"`
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
}

// LLMClient wraps one chat-completion provider.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (*Completion, error)
	Model() string
}
