package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"lexiguide/internal/domain"
	"lexiguide/internal/ocr"
	apperrors "lexiguide/pkg/errors"
)

// ExtractionObserver is told the method of every successful extraction.
type ExtractionObserver interface {
	ObserveExtraction(method string)
}

var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

var extensionTypes = map[string]string{
	".pdf":      "application/pdf",
	".png":      "image/png",
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
	".gif":      "image/gif",
	".bmp":      "image/bmp",
	".tif":      "image/tiff",
	".tiff":     "image/tiff",
	".webp":     "image/webp",
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".epub":     "application/epub+zip",
}

// ExtractionService implements domain.TextExtractor by routing on MIME type.
type ExtractionService struct {
	ocr      ocr.Engine
	pdf      *PDFProcessor
	observer ExtractionObserver
	logger   domain.Logger
}

// NewExtractionService creates the extractor. engine may be nil, which
// disables image uploads and the PDF OCR fallback.
func NewExtractionService(engine ocr.Engine, observer ExtractionObserver, logger domain.Logger) *ExtractionService {
	return &ExtractionService{
		ocr:      engine,
		pdf:      NewPDFProcessor(engine, logger),
		observer: observer,
		logger:   logger,
	}
}

func (s *ExtractionService) Extract(ctx context.Context, name, mimeType string, data []byte) (*domain.ExtractedText, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	resolved := resolveMimeType(name, mimeType, data)
	s.logger.Debug("Extracting document", "name", name, "declared_mime", mimeType, "mime", resolved, "size", len(data))

	var (
		out *domain.ExtractedText
		err error
	)
	switch {
	case imageTypes[resolved]:
		out, err = s.extractImage(ctx, resolved, data)
	case resolved == "application/pdf":
		out, err = s.pdf.Extract(ctx, data)
	case resolved == "text/plain":
		out, err = extractTextDocument("txt", data)
	case resolved == "text/markdown":
		out, err = extractTextDocument("md", data)
	case resolved == "application/epub+zip":
		out, err = extractTextDocument("epub", data)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, resolved)
	}
	if err != nil {
		return nil, classifyExtractionError(ctx, err)
	}

	out.Text = strings.TrimSpace(out.Text)
	if out.Text == "" {
		return nil, domain.ErrEmptyDocument
	}
	if s.observer != nil {
		s.observer.ObserveExtraction(string(out.Method))
	}
	return out, nil
}

func (s *ExtractionService) extractImage(ctx context.Context, mimeType string, data []byte) (*domain.ExtractedText, error) {
	if s.ocr == nil {
		return nil, apperrors.NewUnavailableError("image OCR is not configured")
	}
	res, err := s.ocr.Recognize(ctx, data)
	if err != nil {
		return nil, apperrors.NewProcessingError("failed to recognize text in image", err)
	}
	text := sanitizeText(res.Text)
	return &domain.ExtractedText{
		Text:       text,
		Pages:      []string{strings.TrimSpace(text)},
		Method:     domain.ExtractionImageOCR,
		Confidence: res.Confidence,
		OCRPages:   []int{1},
		Format:     strings.TrimPrefix(mimeType, "image/"),
		MimeType:   mimeType,
	}, nil
}

// classifyExtractionError reports a file the parsers cannot read as a
// processing error. Cancellation and errors that already carry a status pass
// through unchanged.
func classifyExtractionError(ctx context.Context, err error) error {
	var appErr *apperrors.AppError
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.As(err, &appErr), errors.Is(err, domain.ErrUnsupportedFormat):
		return err
	}
	return apperrors.NewProcessingError("Unable to read document: file is corrupt or malformed", err)
}

// resolveMimeType trusts a specific declared type. A missing or generic one
// is replaced by content sniffing, then by the file extension when sniffing
// is inconclusive.
func resolveMimeType(name, declared string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil {
		declared = strings.ToLower(mt)
	} else {
		declared = ""
	}
	if declared == "image/jpg" {
		declared = "image/jpeg"
	}
	byExt := extensionTypes[strings.ToLower(filepath.Ext(name))]

	if declared != "" && declared != "application/octet-stream" {
		// Browsers often send text/plain for Markdown files.
		if declared == "text/plain" && byExt == "text/markdown" {
			return byExt
		}
		return declared
	}

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	switch sniffed {
	case "", "application/octet-stream", "application/zip", "text/plain":
		if byExt != "" {
			return byExt
		}
	}
	if sniffed == "" {
		return "application/octet-stream"
	}
	return sniffed
}

var _ domain.TextExtractor = (*ExtractionService)(nil)
