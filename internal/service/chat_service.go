package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"lexiguide/internal/domain"
	"lexiguide/internal/llm"
	apperrors "lexiguide/pkg/errors"

	"github.com/google/uuid"
)

// historyWindow is how many earlier messages accompany a question.
const historyWindow = 10

type ChatService struct {
	docs    domain.DocumentRepository
	chats   domain.ChatRepository
	llm     domain.LLMClient
	prompts llm.Prompts
	logger  domain.Logger
	now     func() time.Time
}

func NewChatService(
	docs domain.DocumentRepository,
	chats domain.ChatRepository,
	client domain.LLMClient,
	prompts llm.Prompts,
	logger domain.Logger,
) *ChatService {
	return &ChatService{
		docs:    docs,
		chats:   chats,
		llm:     client,
		prompts: prompts,
		logger:  logger,
		now:     time.Now,
	}
}

// Ask answers a question about a document using the recent chat history,
// then records both turns.
func (s *ChatService) Ask(ctx context.Context, ownerID, documentID, question string) (*domain.AnswerResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, &domain.ValidationError{Field: "question", Message: "question is required"}
	}
	if utf8.RuneCountInString(question) > domain.MaxQuestionLength {
		return nil, &domain.ValidationError{Field: "question", Message: "question must be at most 2000 characters"}
	}
	if s.llm == nil {
		return nil, domain.ErrServiceUnavailable
	}

	doc, err := s.docs.GetByID(ctx, ownerID, documentID)
	if err != nil {
		return nil, err
	}

	history, err := s.chats.ListByDocument(ctx, ownerID, documentID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load chat history", err)
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	completion, err := s.llm.Complete(ctx, s.prompts.Question(doc.Text, question, history))
	if err != nil {
		return nil, wrapLLMError(ctx, err)
	}

	asked := s.now().UTC()
	userMsg := &domain.ChatMessage{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		DocumentID: documentID,
		Role:       domain.ChatRoleUser,
		Content:    question,
		CreatedAt:  asked,
	}
	answer := &domain.ChatMessage{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		DocumentID: documentID,
		Role:       domain.ChatRoleAssistant,
		Content:    completion.Text,
		CreatedAt:  asked.Add(time.Millisecond),
	}
	if err := s.chats.Append(ctx, userMsg, answer); err != nil {
		return nil, apperrors.NewInternalError("failed to save chat message", err)
	}

	s.logger.Debug("Question answered", "document_id", documentID, "history", len(history), "model", completion.Model)
	return &domain.AnswerResponse{
		DocumentID: documentID,
		Question:   userMsg,
		Answer:     answer,
		Disclaimer: domain.Disclaimer,
	}, nil
}

func (s *ChatService) History(ctx context.Context, ownerID, documentID string) ([]*domain.ChatMessage, error) {
	if _, err := s.docs.GetByID(ctx, ownerID, documentID); err != nil {
		return nil, err
	}
	return s.chats.ListByDocument(ctx, ownerID, documentID)
}

func (s *ChatService) Clear(ctx context.Context, ownerID, documentID string) error {
	if _, err := s.docs.GetByID(ctx, ownerID, documentID); err != nil {
		return err
	}
	return s.chats.ClearByDocument(ctx, ownerID, documentID)
}

var _ domain.ChatService = (*ChatService)(nil)
