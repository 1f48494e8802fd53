package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lexiguide/internal/domain"
)

type fakeExtractor struct{ name string }

func (f *fakeExtractor) Extract(_ context.Context, name, _ string, data []byte) (*domain.ExtractedText, error) {
	f.name = name
	return &domain.ExtractedText{Text: string(data), Pages: []string{string(data)}, Method: domain.ExtractionPlain, Confidence: 1}, nil
}

type fakeDocuments struct{ domain.DocumentService }

func (fakeDocuments) Upload(_ context.Context, ownerID, name, _ string, file io.Reader) (*domain.Document, error) {
	b, _ := io.ReadAll(file)
	return &domain.Document{ID: "d1", OwnerID: ownerID, Name: name, Text: string(b), PageCount: 1, WordCount: 2, Extraction: domain.ExtractionInfo{Method: domain.ExtractionPlain}}, nil
}

type fakeAnalyses struct{ domain.AnalysisService }

func (fakeAnalyses) Analyze(_ context.Context, ownerID, documentID string) (*domain.Analysis, error) {
	return &domain.Analysis{DocumentID: documentID, Summary: "short summary", Terms: "lien: a claim", Disclaimer: domain.Disclaimer}, nil
}

type fakeDictionary struct {
	legal bool
}

func (f *fakeDictionary) Lookup(_ context.Context, term string, legal bool) (*domain.DictionaryEntry, error) {
	f.legal = legal
	return &domain.DictionaryEntry{Term: term, Formatted: "# " + term + "\n"}, nil
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestRunExtract(t *testing.T) {
	path := writeTemp(t, "lease.txt", "Rent is due.")
	extractor := &fakeExtractor{}
	var out bytes.Buffer

	if err := runExtract(context.Background(), &out, extractor, path, false); err != nil {
		t.Fatalf("runExtract: %v", err)
	}
	if extractor.name != "lease.txt" {
		t.Fatalf("expected base name, got %q", extractor.name)
	}
	if !strings.Contains(out.String(), "Method: plain_text") || !strings.Contains(out.String(), "Rent is due.") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := runExtract(context.Background(), &out, extractor, path, true); err != nil {
		t.Fatalf("runExtract json: %v", err)
	}
	if !strings.Contains(out.String(), `"method": "plain_text"`) {
		t.Fatalf("expected JSON output, got:\n%s", out.String())
	}

	if err := runExtract(context.Background(), &out, extractor, filepath.Join(t.TempDir(), "missing.pdf"), false); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRunAnalyze(t *testing.T) {
	path := writeTemp(t, "nda.txt", "Keep secrets.")
	var out bytes.Buffer

	if err := runAnalyze(context.Background(), &out, fakeDocuments{}, fakeAnalyses{}, path); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}
	for _, want := range []string{"# nda.txt", "short summary", "lien: a claim", domain.Disclaimer} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestRunDefine(t *testing.T) {
	dict := &fakeDictionary{}
	var out bytes.Buffer

	if err := runDefine(context.Background(), &out, dict, "tort", false); err != nil {
		t.Fatalf("runDefine: %v", err)
	}
	if dict.legal {
		t.Fatalf("expected plain lookup")
	}
	if out.String() != "# tort\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
