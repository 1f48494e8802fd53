package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"
	"time"
	"unicode"

	"lexiguide/internal/domain"
	"lexiguide/internal/ocr"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

const (
	// minPageChars is the non-space character count below which a PDF page is
	// treated as scanned and sent through OCR.
	minPageChars = 20

	pageTimeout = 90 * time.Second
	renderDPI   = 200.0
)

// PDFProcessor handles PDF text extraction
type PDFProcessor struct {
	ocr    ocr.Engine
	logger domain.Logger
	open   func(data []byte) (*fitz.Document, error)
}

// NewPDFProcessor creates a new PDF processor. engine may be nil, in which
// case scanned pages stay empty.
func NewPDFProcessor(engine ocr.Engine, logger domain.Logger) *PDFProcessor {
	return &PDFProcessor{
		ocr:    engine,
		logger: logger,
		open:   fitz.NewFromMemory,
	}
}

// Extract returns the text of every page. Pages with too little embedded
// text are rendered and recognized with OCR. If MuPDF cannot open the file,
// the pure Go reader is tried before giving up.
func (p *PDFProcessor) Extract(ctx context.Context, data []byte) (*domain.ExtractedText, error) {
	doc, err := p.open(data)
	if err != nil {
		p.logger.Warn("MuPDF could not open PDF, trying pure Go reader", "error", err)
		pages, ferr := extractWithPDFReader(data)
		if ferr != nil {
			return nil, fmt.Errorf("failed to open PDF: %w (pure Go reader: %v)", err, ferr)
		}
		return assemblePages(pages, nil, nil), nil
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, numPages)
	var ocrPages []int
	var ocrConfidence []float32

	type pageResult struct {
		text string
		err  error
	}

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)

		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		var text string
		select {
		case res := <-resultCh:
			if res.err != nil {
				p.logger.Warn("Failed to extract text from page", "page_num", pageNum+1, "total", numPages, "error", res.err)
			}
			text = res.text
		case <-time.After(pageTimeout):
			p.logger.Warn("PDF page extraction timeout; using empty page", "page", pageNum+1, "timeout_sec", int(pageTimeout.Seconds()))
			go func() { <-resultCh }() // drain so goroutine can exit
		case <-ctx.Done():
			go func() { <-resultCh }()
			return nil, ctx.Err()
		}

		text = sanitizeText(text)
		if nonSpaceCount(text) < minPageChars && p.ocr != nil {
			if res := p.ocrPage(ctx, doc, pageNum); res != nil && nonSpaceCount(res.Text) > nonSpaceCount(text) {
				text = sanitizeText(res.Text)
				ocrPages = append(ocrPages, pageNum+1)
				ocrConfidence = append(ocrConfidence, res.Confidence)
			}
		}
		pages[pageNum] = strings.TrimSpace(text)
	}

	return assemblePages(pages, ocrPages, ocrConfidence), nil
}

// ocrPage renders a page to PNG and recognizes it. Failures are logged and
// reported as nil so the page keeps whatever embedded text it had.
func (p *PDFProcessor) ocrPage(ctx context.Context, doc *fitz.Document, pageNum int) *ocr.Result {
	img, err := doc.ImageDPI(pageNum, renderDPI)
	if err != nil {
		p.logger.Warn("Failed to render page for OCR", "page", pageNum+1, "error", err)
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		p.logger.Warn("Failed to encode page image", "page", pageNum+1, "error", err)
		return nil
	}
	res, err := p.ocr.Recognize(ctx, buf.Bytes())
	if err != nil {
		p.logger.Warn("OCR fallback failed", "page", pageNum+1, "engine", p.ocr.Name(), "error", err)
		return nil
	}
	return res
}

// assemblePages joins page texts and picks the extraction method from how
// many pages needed OCR. Pages with embedded text count as fully confident.
func assemblePages(pages []string, ocrPages []int, ocrConfidence []float32) *domain.ExtractedText {
	method := domain.ExtractionPDFText
	switch {
	case len(ocrPages) == 0:
	case len(ocrPages) == len(pages):
		method = domain.ExtractionPDFOCR
	default:
		method = domain.ExtractionPDFMixed
	}

	var confidence float32
	if len(pages) > 0 {
		sum := float32(len(pages) - len(ocrPages))
		for _, c := range ocrConfidence {
			sum += c
		}
		confidence = sum / float32(len(pages))
	}

	return &domain.ExtractedText{
		Text:       joinPages(pages),
		Pages:      pages,
		Method:     method,
		Confidence: confidence,
		OCRPages:   ocrPages,
		Format:     "pdf",
		MimeType:   "application/pdf",
	}
}

// extractWithPDFReader reads embedded text with ledongthuc/pdf. It has no
// renderer, so scanned pages come back empty.
func extractWithPDFReader(data []byte) (pages []string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	numPages := r.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(sanitizeText(text)))
	}
	return pages, nil
}

func joinPages(pages []string) string {
	nonEmpty := make([]string, 0, len(pages))
	for _, p := range pages {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

func nonSpaceCount(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
