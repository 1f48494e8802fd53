package service

import (
	"context"
	"strings"
	"time"

	"lexiguide/internal/domain"

	"github.com/google/uuid"
)

type FeedbackService struct {
	repo     domain.FeedbackRepository
	docs     domain.DocumentRepository
	analyses domain.AnalysisRepository
	logger   domain.Logger
	now      func() time.Time
}

func NewFeedbackService(
	repo domain.FeedbackRepository,
	docs domain.DocumentRepository,
	analyses domain.AnalysisRepository,
	logger domain.Logger,
) *FeedbackService {
	return &FeedbackService{
		repo:     repo,
		docs:     docs,
		analyses: analyses,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit validates and stores feedback. Referenced documents and analyses
// must belong to the owner.
func (s *FeedbackService) Submit(ctx context.Context, ownerID string, fb *domain.Feedback) (*domain.Feedback, error) {
	fb.Comment = strings.TrimSpace(fb.Comment)
	fb.DocumentID = normalizeReference(fb.DocumentID)
	fb.AnalysisID = normalizeReference(fb.AnalysisID)
	if err := fb.Validate(); err != nil {
		return nil, err
	}
	if fb.DocumentID != nil {
		if _, err := s.docs.GetByID(ctx, ownerID, *fb.DocumentID); err != nil {
			return nil, err
		}
	}
	if fb.AnalysisID != nil {
		if _, err := s.analyses.GetByID(ctx, ownerID, *fb.AnalysisID); err != nil {
			return nil, err
		}
	}

	stored := *fb
	stored.ID = uuid.New().String()
	stored.OwnerID = ownerID
	stored.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, &stored); err != nil {
		return nil, err
	}

	s.logger.Info("Feedback received", "id", stored.ID, "owner_id", ownerID, "rating", stored.Rating)
	return &stored, nil
}

func (s *FeedbackService) List(ctx context.Context, ownerID string) ([]*domain.Feedback, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// normalizeReference trims an optional ID and drops it when blank.
func normalizeReference(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

var _ domain.FeedbackService = (*FeedbackService)(nil)
