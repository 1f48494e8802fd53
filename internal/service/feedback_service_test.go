package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lexiguide/internal/domain"
	"lexiguide/internal/repository"
)

func newTestFeedbackService(t *testing.T) *FeedbackService {
	t.Helper()
	docs := repository.NewMemoryDocumentRepository()
	analyses := repository.NewMemoryAnalysisRepository()
	seedDocument(t, docs, "user1", "doc1", "text")
	_ = analyses.Create(context.Background(), &domain.Analysis{ID: "an1", OwnerID: "user1", DocumentID: "doc1"})
	return NewFeedbackService(repository.NewMemoryFeedbackRepository(), docs, analyses, NewMockLogger())
}

func strPtr(s string) *string { return &s }

func TestFeedbackService_Submit(t *testing.T) {
	svc := newTestFeedbackService(t)
	ctx := context.Background()

	fb, err := svc.Submit(ctx, "user1", &domain.Feedback{
		DocumentID: strPtr("doc1"),
		AnalysisID: strPtr("an1"),
		Rating:     5,
		Comment:    "  Very clear  ",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fb.ID == "" || fb.OwnerID != "user1" || fb.CreatedAt.IsZero() {
		t.Errorf("Expected server-assigned fields, got %+v", fb)
	}
	if fb.Comment != "Very clear" {
		t.Errorf("Expected trimmed comment, got %q", fb.Comment)
	}

	if _, err := svc.Submit(ctx, "user1", &domain.Feedback{Rating: 3}); err != nil {
		t.Fatalf("Expected feedback without references to be accepted, got %v", err)
	}

	list, err := svc.List(ctx, "user1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(list) != 2 || list[1].ID != fb.ID {
		t.Errorf("Expected newest first, got %v", list)
	}
	other, _ := svc.List(ctx, "user2")
	if len(other) != 0 {
		t.Errorf("Expected no feedback for user2, got %d", len(other))
	}
}

func TestFeedbackService_SubmitValidation(t *testing.T) {
	svc := newTestFeedbackService(t)
	ctx := context.Background()
	var verr *domain.ValidationError

	for _, rating := range []int{0, 6} {
		if _, err := svc.Submit(ctx, "user1", &domain.Feedback{Rating: rating}); !errors.As(err, &verr) {
			t.Errorf("Expected validation error for rating %d, got %v", rating, err)
		}
	}
	if _, err := svc.Submit(ctx, "user1", &domain.Feedback{Rating: 3, Comment: strings.Repeat("x", domain.MaxFeedbackCommentSize+1)}); !errors.As(err, &verr) {
		t.Errorf("Expected validation error for long comment, got %v", err)
	}
	if _, err := svc.Submit(ctx, "user2", &domain.Feedback{Rating: 3, DocumentID: strPtr("doc1")}); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("Expected ErrDocumentNotFound for another owner's document, got %v", err)
	}
	if _, err := svc.Submit(ctx, "user1", &domain.Feedback{Rating: 3, AnalysisID: strPtr("nope")}); !errors.Is(err, domain.ErrAnalysisNotFound) {
		t.Errorf("Expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestFeedbackService_BlankReferencesAreDropped(t *testing.T) {
	svc := newTestFeedbackService(t)

	fb, err := svc.Submit(context.Background(), "user1", &domain.Feedback{
		DocumentID: strPtr(""),
		AnalysisID: strPtr("   "),
		Rating:     4,
	})
	if err != nil {
		t.Fatalf("Expected blank references to be accepted, got %v", err)
	}
	if fb.DocumentID != nil || fb.AnalysisID != nil {
		t.Errorf("Expected nil references, got document=%v analysis=%v", fb.DocumentID, fb.AnalysisID)
	}

	fb, err = svc.Submit(context.Background(), "user1", &domain.Feedback{DocumentID: strPtr(" doc1 "), Rating: 4})
	if err != nil {
		t.Fatalf("Expected padded reference to resolve, got %v", err)
	}
	if fb.DocumentID == nil || *fb.DocumentID != "doc1" {
		t.Errorf("Expected trimmed document id, got %v", fb.DocumentID)
	}
}
