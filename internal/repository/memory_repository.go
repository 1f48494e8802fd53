package repository

import (
	"context"
	"sort"
	"sync"

	"lexiguide/internal/domain"
)

// In-memory repositories. State lives for the lifetime of the process and
// every read returns copies so callers cannot mutate stored records.

type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]*domain.Document
}

func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{docs: make(map[string]*domain.Document)}
}

func (r *MemoryDocumentRepository) Create(_ context.Context, document *domain.Document) error {
	if err := document.Validate(); err != nil {
		return err
	}
	c := *document
	c.Extraction.OCRPages = append([]int(nil), document.Extraction.OCRPages...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[c.ID] = &c
	return nil
}

func (r *MemoryDocumentRepository) GetByID(_ context.Context, ownerID, id string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok || doc.OwnerID != ownerID {
		return nil, domain.ErrDocumentNotFound
	}
	c := *doc
	return &c, nil
}

// ListByOwner returns the owner's documents newest first.
func (r *MemoryDocumentRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Document, 0)
	for _, doc := range r.docs {
		if doc.OwnerID == ownerID {
			c := *doc
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryDocumentRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.OwnerID != ownerID {
		return domain.ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

type MemoryAnalysisRepository struct {
	mu       sync.RWMutex
	analyses []*domain.Analysis
}

func NewMemoryAnalysisRepository() *MemoryAnalysisRepository {
	return &MemoryAnalysisRepository{}
}

func (r *MemoryAnalysisRepository) Create(_ context.Context, analysis *domain.Analysis) error {
	c := *analysis
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses = append(r.analyses, &c)
	return nil
}

func (r *MemoryAnalysisRepository) GetByID(_ context.Context, ownerID, id string) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.analyses {
		if a.ID == id && a.OwnerID == ownerID {
			c := *a
			return &c, nil
		}
	}
	return nil, domain.ErrAnalysisNotFound
}

func (r *MemoryAnalysisRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Analysis, error) {
	return r.list(func(a *domain.Analysis) bool { return a.OwnerID == ownerID }), nil
}

func (r *MemoryAnalysisRepository) ListByDocument(_ context.Context, ownerID, documentID string) ([]*domain.Analysis, error) {
	return r.list(func(a *domain.Analysis) bool {
		return a.OwnerID == ownerID && a.DocumentID == documentID
	}), nil
}

// list walks backwards so the result is newest first.
func (r *MemoryAnalysisRepository) list(match func(*domain.Analysis) bool) []*domain.Analysis {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Analysis, 0)
	for i := len(r.analyses) - 1; i >= 0; i-- {
		if match(r.analyses[i]) {
			c := *r.analyses[i]
			out = append(out, &c)
		}
	}
	return out
}

type MemoryChatRepository struct {
	mu       sync.RWMutex
	messages map[string][]*domain.ChatMessage
}

func NewMemoryChatRepository() *MemoryChatRepository {
	return &MemoryChatRepository{messages: make(map[string][]*domain.ChatMessage)}
}

func chatKey(ownerID, documentID string) string {
	return ownerID + "/" + documentID
}

func (r *MemoryChatRepository) Append(_ context.Context, msgs ...*domain.ChatMessage) error {
	copies := make([]*domain.ChatMessage, 0, len(msgs))
	for _, msg := range msgs {
		if err := msg.Validate(); err != nil {
			return err
		}
		c := *msg
		copies = append(copies, &c)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range copies {
		key := chatKey(c.OwnerID, c.DocumentID)
		r.messages[key] = append(r.messages[key], c)
	}
	return nil
}

func (r *MemoryChatRepository) ListByDocument(_ context.Context, ownerID, documentID string) ([]*domain.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.messages[chatKey(ownerID, documentID)]
	out := make([]*domain.ChatMessage, 0, len(stored))
	for _, m := range stored {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

func (r *MemoryChatRepository) ClearByDocument(_ context.Context, ownerID, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, chatKey(ownerID, documentID))
	return nil
}

type MemoryFeedbackRepository struct {
	mu       sync.RWMutex
	feedback []*domain.Feedback
}

func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{}
}

func (r *MemoryFeedbackRepository) Create(_ context.Context, fb *domain.Feedback) error {
	c := *fb
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback = append(r.feedback, &c)
	return nil
}

func (r *MemoryFeedbackRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Feedback, 0)
	for i := len(r.feedback) - 1; i >= 0; i-- {
		if r.feedback[i].OwnerID == ownerID {
			c := *r.feedback[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

var (
	_ domain.DocumentRepository = (*MemoryDocumentRepository)(nil)
	_ domain.AnalysisRepository = (*MemoryAnalysisRepository)(nil)
	_ domain.ChatRepository     = (*MemoryChatRepository)(nil)
	_ domain.FeedbackRepository = (*MemoryFeedbackRepository)(nil)
)
