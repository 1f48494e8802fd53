package domain

import (
	"context"
	"io"
	"time"
)

// ExtractionMethod records how the text of a document was obtained.
type ExtractionMethod string

const (
	ExtractionImageOCR ExtractionMethod = "image_ocr"
	ExtractionPDFText  ExtractionMethod = "pdf_text"
	ExtractionPDFOCR   ExtractionMethod = "pdf_ocr"
	ExtractionPDFMixed ExtractionMethod = "pdf_mixed"
	ExtractionPlain    ExtractionMethod = "plain_text"
	ExtractionEPUB     ExtractionMethod = "epub"
)

// ExtractionInfo describes the extraction run that produced Document.Text.
type ExtractionInfo struct {
	Method     ExtractionMethod `json:"method"`
	Confidence float32          `json:"confidence,omitempty"`
	OCRPages   []int            `json:"ocr_pages,omitempty"`
}

// Document is an uploaded file together with its extracted text.
type Document struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Format   string `json:"format"`

	Text       string         `json:"text"`
	PageCount  int            `json:"page_count"`
	WordCount  int            `json:"word_count"`
	FileSize   int64          `json:"file_size"`
	Extraction ExtractionInfo `json:"extraction"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the fields every stored document must carry.
func (d *Document) Validate() error {
	if d.ID == "" {
		return &ValidationError{Field: "id", Message: "document ID is required"}
	}
	if d.OwnerID == "" {
		return &ValidationError{Field: "owner_id", Message: "owner ID is required"}
	}
	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if d.FileSize < 0 {
		return &ValidationError{Field: "file_size", Message: "file size cannot be negative"}
	}
	if d.PageCount < 0 {
		return &ValidationError{Field: "page_count", Message: "page count cannot be negative"}
	}
	return nil
}

// Summary returns a copy of the document without its text, for list views.
func (d *Document) Summary() *Document {
	c := *d
	c.Text = ""
	return &c
}

// ExtractedText is the output of the text-extraction adapter.
type ExtractedText struct {
	Text       string           `json:"text"`
	Pages      []string         `json:"pages"`
	Method     ExtractionMethod `json:"method"`
	Confidence float32          `json:"confidence,omitempty"`
	OCRPages   []int            `json:"ocr_pages,omitempty"`
	Format     string           `json:"format"`
	MimeType   string           `json:"mime_type"`
}

// TextExtractor routes a file to the extractor matching its type.
type TextExtractor interface {
	Extract(ctx context.Context, name, mimeType string, data []byte) (*ExtractedText, error)
}

// DocumentRepository defines persistence operations for documents.
type DocumentRepository interface {
	Create(ctx context.Context, document *Document) error
	GetByID(ctx context.Context, ownerID, id string) (*Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Document, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// DocumentService defines the use-case operations for documents.
type DocumentService interface {
	Upload(ctx context.Context, ownerID, name, mimeType string, file io.Reader) (*Document, error)
	GetDocument(ctx context.Context, ownerID, documentID string) (*Document, error)
	ListDocuments(ctx context.Context, ownerID string) ([]*Document, error)
	DeleteDocument(ctx context.Context, ownerID, documentID string) error
}
