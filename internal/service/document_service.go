package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"lexiguide/internal/domain"
	apperrors "lexiguide/pkg/errors"

	"github.com/google/uuid"
)

type DocumentService struct {
	repo        domain.DocumentRepository
	chats       domain.ChatRepository
	extractor   domain.TextExtractor
	maxFileSize int64
	logger      domain.Logger
	now         func() time.Time
}

func NewDocumentService(
	repo domain.DocumentRepository,
	chats domain.ChatRepository,
	extractor domain.TextExtractor,
	maxFileSize int64,
	logger domain.Logger,
) *DocumentService {
	return &DocumentService{
		repo:        repo,
		chats:       chats,
		extractor:   extractor,
		maxFileSize: maxFileSize,
		logger:      logger,
		now:         time.Now,
	}
}

// Upload reads at most maxFileSize bytes, extracts the text and stores the document.
func (s *DocumentService) Upload(ctx context.Context, ownerID, name, mimeType string, file io.Reader) (*domain.Document, error) {
	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == "/" {
		return nil, apperrors.NewValidationError("file name is required")
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxFileSize+1))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read upload", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, apperrors.NewTooLargeError(domain.ErrFileTooLarge.Error(), s.maxFileSize)
	}

	start := s.now()
	extracted, err := s.extractor.Extract(ctx, name, mimeType, data)
	if err != nil {
		s.logger.Warn("Text extraction failed", "name", name, "error", err)
		return nil, err
	}

	pageCount := len(extracted.Pages)
	if pageCount == 0 {
		pageCount = 1
	}
	now := s.now().UTC()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		MimeType:  extracted.MimeType,
		Format:    extracted.Format,
		Text:      extracted.Text,
		PageCount: pageCount,
		WordCount: len(strings.Fields(extracted.Text)),
		FileSize:  int64(len(data)),
		Extraction: domain.ExtractionInfo{
			Method:     extracted.Method,
			Confidence: extracted.Confidence,
			OCRPages:   extracted.OCRPages,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	s.logger.Info("Document uploaded",
		"id", doc.ID,
		"owner_id", ownerID,
		"method", doc.Extraction.Method,
		"pages", doc.PageCount,
		"words", doc.WordCount,
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return doc, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, ownerID, documentID string) (*domain.Document, error) {
	return s.repo.GetByID(ctx, ownerID, documentID)
}

// ListDocuments returns the owner's documents without their text.
func (s *DocumentService) ListDocuments(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	docs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Summary())
	}
	return out, nil
}

// DeleteDocument removes the document and its chat history. Analyses are
// kept in the owner's history.
func (s *DocumentService) DeleteDocument(ctx context.Context, ownerID, documentID string) error {
	if err := s.repo.Delete(ctx, ownerID, documentID); err != nil {
		return err
	}
	if s.chats != nil {
		if err := s.chats.ClearByDocument(ctx, ownerID, documentID); err != nil && !errors.Is(err, domain.ErrDocumentNotFound) {
			s.logger.Warn("Failed to clear chat history of deleted document", "id", documentID, "error", err)
		}
	}
	s.logger.Info("Document deleted", "id", documentID, "owner_id", ownerID)
	return nil
}

var _ domain.DocumentService = (*DocumentService)(nil)
