package service

import (
	"context"
	"errors"
	"time"

	"lexiguide/internal/domain"
	"lexiguide/internal/llm"
	apperrors "lexiguide/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AnalysisService struct {
	docs     domain.DocumentRepository
	analyses domain.AnalysisRepository
	llm      domain.LLMClient
	prompts  llm.Prompts
	logger   domain.Logger
	now      func() time.Time
}

// NewAnalysisService wires the analysis pipeline. client may be nil, in
// which case Analyze reports domain.ErrServiceUnavailable while the history
// endpoints keep working.
func NewAnalysisService(
	docs domain.DocumentRepository,
	analyses domain.AnalysisRepository,
	client domain.LLMClient,
	prompts llm.Prompts,
	logger domain.Logger,
) *AnalysisService {
	return &AnalysisService{
		docs:     docs,
		analyses: analyses,
		llm:      client,
		prompts:  prompts,
		logger:   logger,
		now:      time.Now,
	}
}

// Analyze runs the summary and term-extraction prompts concurrently and
// records the result in the owner's history.
func (s *AnalysisService) Analyze(ctx context.Context, ownerID, documentID string) (*domain.Analysis, error) {
	if s.llm == nil {
		return nil, domain.ErrServiceUnavailable
	}

	doc, err := s.docs.GetByID(ctx, ownerID, documentID)
	if err != nil {
		return nil, err
	}

	var summary, terms *domain.Completion
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.llm.Complete(gctx, s.prompts.Analysis(doc.Text))
		return err
	})
	g.Go(func() error {
		var err error
		terms, err = s.llm.Complete(gctx, s.prompts.TermExtraction(doc.Text))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, wrapLLMError(ctx, err)
	}

	analysis := &domain.Analysis{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		Summary:      summary.Text,
		Terms:        terms.Text,
		Model:        summary.Model,
		Disclaimer:   domain.Disclaimer,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.analyses.Create(ctx, analysis); err != nil {
		return nil, apperrors.NewInternalError("failed to save analysis", err)
	}

	s.logger.Info("Document analyzed",
		"analysis_id", analysis.ID,
		"document_id", doc.ID,
		"model", analysis.Model,
		"prompt_tokens", summary.PromptTokens+terms.PromptTokens,
		"completion_tokens", summary.CompletionTokens+terms.CompletionTokens,
	)
	return analysis, nil
}

func (s *AnalysisService) GetAnalysis(ctx context.Context, ownerID, analysisID string) (*domain.Analysis, error) {
	return s.analyses.GetByID(ctx, ownerID, analysisID)
}

func (s *AnalysisService) History(ctx context.Context, ownerID string) ([]*domain.Analysis, error) {
	return s.analyses.ListByOwner(ctx, ownerID)
}

// ListForDocument returns the analyses of a document the owner still has.
func (s *AnalysisService) ListForDocument(ctx context.Context, ownerID, documentID string) ([]*domain.Analysis, error) {
	if _, err := s.docs.GetByID(ctx, ownerID, documentID); err != nil {
		return nil, err
	}
	return s.analyses.ListByDocument(ctx, ownerID, documentID)
}

// wrapLLMError keeps cancellation visible and reports provider failures as 502.
func wrapLLMError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperrors.NewNetworkError("language model request failed", err)
}

var _ domain.AnalysisService = (*AnalysisService)(nil)
