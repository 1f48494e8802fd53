package domain

import (
	"context"
	"time"
)

// Disclaimer is attached to every LLM-produced answer.
const Disclaimer = "LexiGuide provides document analysis and recommendations but does not constitute legal advice. Always consult with a qualified legal professional for legal matters."

// Analysis is one run of the document-analysis and term-extraction prompts.
type Analysis struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	DocumentID   string    `json:"document_id"`
	DocumentName string    `json:"document_name"`
	Summary      string    `json:"summary"`
	Terms        string    `json:"terms"`
	Model        string    `json:"model,omitempty"`
	Disclaimer   string    `json:"disclaimer"`
	CreatedAt    time.Time `json:"created_at"`
}

// AnalysisRepository stores the analysis history. Lists are newest first.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *Analysis) error
	GetByID(ctx context.Context, ownerID, id string) (*Analysis, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Analysis, error)
	ListByDocument(ctx context.Context, ownerID, documentID string) ([]*Analysis, error)
}

type AnalysisService interface {
	Analyze(ctx context.Context, ownerID, documentID string) (*Analysis, error)
	GetAnalysis(ctx context.Context, ownerID, analysisID string) (*Analysis, error)
	History(ctx context.Context, ownerID string) ([]*Analysis, error)
	ListForDocument(ctx context.Context, ownerID, documentID string) ([]*Analysis, error)
}
