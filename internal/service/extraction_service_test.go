package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"lexiguide/internal/domain"
	apperrors "lexiguide/pkg/errors"
)

func buildEPUB(t *testing.T, chapters map[string]string, spine []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}

	write("mimetype", "application/epub+zip")
	write("META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`)

	var manifest, itemrefs strings.Builder
	for _, id := range spine {
		manifest.WriteString(`<item id="` + id + `" href="` + id + `.xhtml" media-type="application/xhtml+xml"/>`)
		itemrefs.WriteString(`<itemref idref="` + id + `"/>`)
	}
	write("OEBPS/content.opf", `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <metadata><dc:title>Lease Agreement</dc:title><dc:creator>Landlord LLC</dc:creator></metadata>
  <manifest>`+manifest.String()+`</manifest>
  <spine>`+itemrefs.String()+`</spine>
</package>`)
	for id, body := range chapters {
		write("OEBPS/"+id+".xhtml", body)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtractionService_PlainText(t *testing.T) {
	observer := &MockExtractionObserver{}
	svc := NewExtractionService(nil, observer, NewMockLogger())

	out, err := svc.Extract(context.Background(), "lease.txt", "text/plain", []byte("The tenant shall pay rent.\r\n\r\nThe landlord shall repair.\x00"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.Method != domain.ExtractionPlain {
		t.Errorf("Expected method plain_text, got %s", out.Method)
	}
	if out.MimeType != "text/plain" || out.Format != "txt" {
		t.Errorf("Unexpected type %s / %s", out.MimeType, out.Format)
	}
	if strings.ContainsRune(out.Text, 0) || strings.Contains(out.Text, "\r") {
		t.Errorf("Expected sanitized text, got %q", out.Text)
	}
	if !strings.Contains(out.Text, "The landlord shall repair.") {
		t.Errorf("Missing paragraph in %q", out.Text)
	}
	if len(out.Pages) != 1 {
		t.Errorf("Expected 1 page, got %d", len(out.Pages))
	}
	if len(observer.methods) != 1 || observer.methods[0] != "plain_text" {
		t.Errorf("Expected observer to record plain_text, got %v", observer.methods)
	}
}

func TestExtractionService_MarkdownDeclaredAsPlainText(t *testing.T) {
	svc := NewExtractionService(nil, nil, NewMockLogger())

	out, err := svc.Extract(context.Background(), "notes.md", "text/plain", []byte("# Terms\n\nIndemnity applies."))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.MimeType != "text/markdown" || out.Format != "md" {
		t.Errorf("Expected markdown, got %s / %s", out.MimeType, out.Format)
	}
}

func TestExtractionService_EPUB(t *testing.T) {
	data := buildEPUB(t, map[string]string{
		"ch1": `<html><head><title>skip</title></head><body><h1>Article 1</h1><p>The lessee agrees.</p></body></html>`,
		"ch2": `<html><body><p>Termination requires notice.</p><script>var x;</script></body></html>`,
	}, []string{"ch1", "ch2"})
	svc := NewExtractionService(nil, nil, NewMockLogger())

	out, err := svc.Extract(context.Background(), "lease.epub", "", data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.Method != domain.ExtractionEPUB {
		t.Errorf("Expected epub method, got %s", out.Method)
	}
	first := strings.Index(out.Text, "The lessee agrees.")
	second := strings.Index(out.Text, "Termination requires notice.")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Expected chapters in spine order, got %q", out.Text)
	}
	if strings.Contains(out.Text, "skip") || strings.Contains(out.Text, "var x") {
		t.Errorf("Expected head and script content to be dropped, got %q", out.Text)
	}
}

func TestExtractionService_InvalidEPUB(t *testing.T) {
	svc := NewExtractionService(nil, nil, NewMockLogger())

	_, err := svc.Extract(context.Background(), "broken.epub", "application/epub+zip", []byte("not a zip"))
	if !apperrors.IsType(err, apperrors.ErrorTypeProcessing) {
		t.Fatalf("Expected processing error for invalid epub, got %v", err)
	}
	if apperrors.GetStatusCode(err) != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", apperrors.GetStatusCode(err))
	}
}

func TestExtractionService_CorruptPDF(t *testing.T) {
	svc := NewExtractionService(nil, nil, NewMockLogger())

	_, err := svc.Extract(context.Background(), "broken.pdf", "application/pdf", []byte("%PDF-1.7 garbage"))
	if err == nil {
		t.Fatal("Expected error for corrupt pdf")
	}
	// MuPDF may repair the file into an empty document instead of failing.
	if !errors.Is(err, domain.ErrEmptyDocument) && apperrors.GetStatusCode(err) != http.StatusUnprocessableEntity {
		t.Errorf("Expected an unprocessable document error, got %v", err)
	}
}

func TestClassifyExtractionError(t *testing.T) {
	ctx := context.Background()

	unsupported := fmt.Errorf("%w: epub2", domain.ErrUnsupportedFormat)
	if got := classifyExtractionError(ctx, unsupported); got != unsupported {
		t.Errorf("Expected unsupported format to pass through, got %v", got)
	}
	unavailable := apperrors.NewUnavailableError("ocr off")
	if got := classifyExtractionError(ctx, unavailable); got != unavailable {
		t.Errorf("Expected app error to pass through, got %v", got)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if got := classifyExtractionError(cancelled, errors.New("read interrupted")); !errors.Is(got, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", got)
	}
}

func TestExtractionService_UnsupportedAndEmpty(t *testing.T) {
	svc := NewExtractionService(nil, nil, NewMockLogger())

	_, err := svc.Extract(context.Background(), "sheet.xlsx", "application/vnd.ms-excel", []byte("data"))
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}

	_, err = svc.Extract(context.Background(), "empty.txt", "text/plain", nil)
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("Expected ErrEmptyDocument for no bytes, got %v", err)
	}

	_, err = svc.Extract(context.Background(), "blank.txt", "text/plain", []byte(" \n\n\t "))
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("Expected ErrEmptyDocument for whitespace, got %v", err)
	}
}

func TestExtractionService_Image(t *testing.T) {
	engine := &MockOCREngine{text: "SIGNED AND SEALED"}
	observer := &MockExtractionObserver{}
	svc := NewExtractionService(engine, observer, NewMockLogger())

	out, err := svc.Extract(context.Background(), "scan.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.Method != domain.ExtractionImageOCR {
		t.Errorf("Expected image_ocr, got %s", out.Method)
	}
	if out.Text != "SIGNED AND SEALED" || out.Confidence != 0.8 {
		t.Errorf("Unexpected OCR output %+v", out)
	}
	if len(out.OCRPages) != 1 || out.OCRPages[0] != 1 {
		t.Errorf("Expected OCR page 1, got %v", out.OCRPages)
	}
	if engine.calls != 1 {
		t.Errorf("Expected 1 OCR call, got %d", engine.calls)
	}
}

func TestExtractionService_ImageErrors(t *testing.T) {
	svc := NewExtractionService(nil, nil, NewMockLogger())
	_, err := svc.Extract(context.Background(), "scan.png", "image/png", []byte("png"))
	if !apperrors.IsType(err, apperrors.ErrorTypeUnavailable) {
		t.Errorf("Expected unavailable error without OCR engine, got %v", err)
	}

	svc = NewExtractionService(&MockOCREngine{err: errors.New("engine crashed")}, nil, NewMockLogger())
	_, err = svc.Extract(context.Background(), "scan.jpg", "image/jpeg", []byte("jpg"))
	if !apperrors.IsType(err, apperrors.ErrorTypeProcessing) {
		t.Errorf("Expected processing error, got %v", err)
	}
}

func TestResolveMimeType(t *testing.T) {
	cases := []struct {
		name     string
		file     string
		declared string
		data     []byte
		want     string
	}{
		{"declared wins", "a.bin", "application/pdf", []byte("x"), "application/pdf"},
		{"declared with params", "a.txt", "text/plain; charset=utf-8", []byte("x"), "text/plain"},
		{"jpg alias", "a.jpg", "image/jpg", []byte("x"), "image/jpeg"},
		{"markdown sent as text", "a.md", "text/plain", []byte("x"), "text/markdown"},
		{"sniffed pdf", "upload", "", []byte("%PDF-1.7\n"), "application/pdf"},
		{"octet stream falls back to extension", "book.epub", "application/octet-stream", []byte("PK\x03\x04"), "application/epub+zip"},
		{"sniffed text with markdown extension", "notes.md", "", []byte("hello world"), "text/markdown"},
		{"sniffed text", "notes", "", []byte("hello world"), "text/plain"},
		{"sniffed png", "scan", "", []byte("\x89PNG\r\n\x1a\n"), "image/png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveMimeType(tc.file, tc.declared, tc.data); got != tc.want {
				t.Errorf("resolveMimeType(%q, %q) = %q, want %q", tc.file, tc.declared, got, tc.want)
			}
		})
	}
}

func TestAssemblePages(t *testing.T) {
	out := assemblePages([]string{"page one text", "page two text"}, nil, nil)
	if out.Method != domain.ExtractionPDFText || out.Confidence != 1 {
		t.Errorf("Expected pdf_text with confidence 1, got %s %v", out.Method, out.Confidence)
	}
	if out.Text != "page one text\n\npage two text" {
		t.Errorf("Unexpected joined text %q", out.Text)
	}

	out = assemblePages([]string{"text", "scanned"}, []int{2}, []float32{0.5})
	if out.Method != domain.ExtractionPDFMixed {
		t.Errorf("Expected pdf_mixed, got %s", out.Method)
	}
	if out.Confidence != 0.75 {
		t.Errorf("Expected confidence 0.75, got %v", out.Confidence)
	}

	out = assemblePages([]string{"scanned"}, []int{1}, []float32{0.5})
	if out.Method != domain.ExtractionPDFOCR {
		t.Errorf("Expected pdf_ocr, got %s", out.Method)
	}

	out = assemblePages([]string{"", "b"}, nil, nil)
	if out.Text != "b" {
		t.Errorf("Expected empty pages to be skipped, got %q", out.Text)
	}
}

func TestPaginateParagraphs(t *testing.T) {
	paras := []string{strings.Repeat("a", 40), strings.Repeat("b", 40), strings.Repeat("c", 120)}
	pages := paginateParagraphs(paras, 100)
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d: %q", len(pages), pages)
	}
	if pages[0] != strings.Repeat("a", 40)+"\n\n"+strings.Repeat("b", 40) {
		t.Errorf("Unexpected first page %q", pages[0])
	}
	if pages[1] != strings.Repeat("c", 120) {
		t.Errorf("Expected oversized paragraph on its own page, got %q", pages[1])
	}
}

func TestSanitizeText(t *testing.T) {
	got := sanitizeText("a\x00b\r\nc\td\x07\xff")
	if got != "ab\nc\td" {
		t.Errorf("sanitizeText = %q", got)
	}
}

func TestNonSpaceCount(t *testing.T) {
	if n := nonSpaceCount(" a b\n\tc "); n != 3 {
		t.Errorf("Expected 3, got %d", n)
	}
}
