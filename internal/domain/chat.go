package domain

import (
	"context"
	"time"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// MaxQuestionLength bounds a single question sent to the Q&A prompt.
const MaxQuestionLength = 2000

// ChatMessage is one turn of a question/answer exchange about a document.
type ChatMessage struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	DocumentID string    `json:"document_id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the fields a stored turn needs.
func (m *ChatMessage) Validate() error {
	if m.ID == "" || m.OwnerID == "" || m.DocumentID == "" {
		return &ValidationError{Field: "id", Message: "message id, owner and document are required"}
	}
	if m.Role != ChatRoleUser && m.Role != ChatRoleAssistant {
		return &ValidationError{Field: "role", Message: "role must be user or assistant"}
	}
	return nil
}

// ChatRepository persists chat history. Lists are oldest first. Append stores
// all of msgs or none of them.
type ChatRepository interface {
	Append(ctx context.Context, msgs ...*ChatMessage) error
	ListByDocument(ctx context.Context, ownerID, documentID string) ([]*ChatMessage, error)
	ClearByDocument(ctx context.Context, ownerID, documentID string) error
}

type QuestionRequest struct {
	Question string `json:"question"`
}

type AnswerResponse struct {
	DocumentID string       `json:"document_id"`
	Question   *ChatMessage `json:"question"`
	Answer     *ChatMessage `json:"answer"`
	Disclaimer string       `json:"disclaimer"`
}

type ChatService interface {
	Ask(ctx context.Context, ownerID, documentID, question string) (*AnswerResponse, error)
	History(ctx context.Context, ownerID, documentID string) ([]*ChatMessage, error)
	Clear(ctx context.Context, ownerID, documentID string) error
}
