package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lexiguide/internal/domain"
	"lexiguide/internal/llm"
	"lexiguide/internal/repository"
)

func newTestChatService(t *testing.T, client domain.LLMClient) (*ChatService, *repository.MemoryChatRepository) {
	t.Helper()
	docs := repository.NewMemoryDocumentRepository()
	chats := repository.NewMemoryChatRepository()
	seedDocument(t, docs, "user1", "doc1", "Rent is due on the first day of each month.")
	return NewChatService(docs, chats, client, llm.Prompts{}, NewMockLogger()), chats
}

func TestChatService_Ask(t *testing.T) {
	client := NewMockLLM()
	client.replies[domain.PromptQuestion] = "Rent is due on the first."
	service, chats := newTestChatService(t, client)

	resp, err := service.Ask(context.Background(), "user1", "doc1", "  When is rent due?  ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.Answer.Content != "Rent is due on the first." {
		t.Errorf("Unexpected answer %q", resp.Answer.Content)
	}
	if resp.Question.Content != "When is rent due?" {
		t.Errorf("Expected trimmed question, got %q", resp.Question.Content)
	}
	if resp.Disclaimer != domain.Disclaimer {
		t.Error("Expected disclaimer on answer")
	}
	if !resp.Answer.CreatedAt.After(resp.Question.CreatedAt) {
		t.Error("Expected answer to sort after question")
	}

	msgs, _ := chats.ListByDocument(context.Background(), "user1", "doc1")
	if len(msgs) != 2 || msgs[0].Role != domain.ChatRoleUser || msgs[1].Role != domain.ChatRoleAssistant {
		t.Errorf("Expected user then assistant message, got %v", msgs)
	}

	prompt := client.Prompts()[0]
	if !strings.Contains(prompt.User, "Rent is due on the first day") || !strings.Contains(prompt.User, "When is rent due?") {
		t.Errorf("Expected document and question in prompt, got %q", prompt.User)
	}
}

func TestChatService_AskSendsRecentHistory(t *testing.T) {
	client := NewMockLLM()
	service, _ := newTestChatService(t, client)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := service.Ask(ctx, "user1", "doc1", fmt.Sprintf("question %d", i)); err != nil {
			t.Fatalf("ask %d: %v", i, err)
		}
	}

	prompts := client.Prompts()
	last := prompts[len(prompts)-1]
	if len(last.History) != historyWindow {
		t.Fatalf("Expected %d history messages, got %d", historyWindow, len(last.History))
	}
	if last.History[0].Content != "question 1" {
		t.Errorf("Expected oldest kept message to be 'question 1', got %q", last.History[0].Content)
	}
	if last.History[1].Role != domain.ChatRoleAssistant {
		t.Errorf("Expected alternating roles, got %q", last.History[1].Role)
	}
}

func TestChatService_AskValidation(t *testing.T) {
	service, _ := newTestChatService(t, NewMockLLM())
	ctx := context.Background()

	var verr *domain.ValidationError
	if _, err := service.Ask(ctx, "user1", "doc1", "   "); !errors.As(err, &verr) {
		t.Errorf("Expected validation error for empty question, got %v", err)
	}
	if _, err := service.Ask(ctx, "user1", "doc1", strings.Repeat("é", domain.MaxQuestionLength+1)); !errors.As(err, &verr) {
		t.Errorf("Expected validation error for long question, got %v", err)
	}
	if _, err := service.Ask(ctx, "user1", "doc1", strings.Repeat("é", domain.MaxQuestionLength)); err != nil {
		t.Errorf("Expected question at the limit to be accepted, got %v", err)
	}
	if _, err := service.Ask(ctx, "user2", "doc1", "hello"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("Expected ErrDocumentNotFound for other owner, got %v", err)
	}

	noModel, _ := newTestChatService(t, nil)
	if _, err := noModel.Ask(ctx, "user1", "doc1", "hello"); !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Errorf("Expected ErrServiceUnavailable, got %v", err)
	}
}

func TestChatService_FailedAnswerIsNotRecorded(t *testing.T) {
	client := NewMockLLM()
	client.errs[domain.PromptQuestion] = errors.New("upstream down")
	service, chats := newTestChatService(t, client)

	if _, err := service.Ask(context.Background(), "user1", "doc1", "hello"); err == nil {
		t.Fatal("Expected error")
	}
	msgs, _ := chats.ListByDocument(context.Background(), "user1", "doc1")
	if len(msgs) != 0 {
		t.Errorf("Expected no messages after failure, got %d", len(msgs))
	}
}

// batchRecordingChatRepository fails every Append and records the batch sizes it saw.
type batchRecordingChatRepository struct {
	*repository.MemoryChatRepository
	batches []int
}

func (r *batchRecordingChatRepository) Append(_ context.Context, msgs ...*domain.ChatMessage) error {
	r.batches = append(r.batches, len(msgs))
	return errors.New("connection reset")
}

func TestChatService_SaveFailureLeavesNoOrphanQuestion(t *testing.T) {
	docs := repository.NewMemoryDocumentRepository()
	seedDocument(t, docs, "user1", "doc1", "Rent is due on the first day of each month.")
	chats := &batchRecordingChatRepository{MemoryChatRepository: repository.NewMemoryChatRepository()}
	service := NewChatService(docs, chats, NewMockLLM(), llm.Prompts{}, NewMockLogger())

	if _, err := service.Ask(context.Background(), "user1", "doc1", "When is rent due?"); err == nil {
		t.Fatal("Expected error when the turn cannot be saved")
	}
	if len(chats.batches) != 1 || chats.batches[0] != 2 {
		t.Fatalf("Expected question and answer saved in one batch, got %v", chats.batches)
	}
	msgs, _ := chats.ListByDocument(context.Background(), "user1", "doc1")
	if len(msgs) != 0 {
		t.Errorf("Expected no stored messages, got %d", len(msgs))
	}
}

func TestChatService_HistoryAndClear(t *testing.T) {
	service, _ := newTestChatService(t, NewMockLLM())
	ctx := context.Background()
	_, _ = service.Ask(ctx, "user1", "doc1", "hello")

	msgs, err := service.History(ctx, "user1", "doc1")
	if err != nil || len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d (%v)", len(msgs), err)
	}
	if err := service.Clear(ctx, "user1", "doc1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	msgs, _ = service.History(ctx, "user1", "doc1")
	if len(msgs) != 0 {
		t.Errorf("Expected empty history after clear, got %d", len(msgs))
	}
	if _, err := service.History(ctx, "user1", "missing"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("Expected ErrDocumentNotFound, got %v", err)
	}
	if err := service.Clear(ctx, "user2", "doc1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("Expected ErrDocumentNotFound, got %v", err)
	}
}
