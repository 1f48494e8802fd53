package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
)

func TestEstimateConfidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float32
	}{
		{name: "empty", text: "", want: 0},
		{name: "whitespace only", text: " \n\t", want: 0},
		{name: "clean text", text: "Lease Agreement 2024", want: 1},
		{name: "half noise", text: "ab|~", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateConfidence(tt.text); got != tt.want {
				t.Errorf("estimateConfidence(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestWrapOCRError(t *testing.T) {
	if WrapOCRError("op", nil, "") != nil {
		t.Fatalf("expected nil for nil error")
	}

	err := WrapOCRError("Recognize", ErrNoText, "page 2")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected wrapped error to match ErrNoText")
	}
	if !strings.Contains(err.Error(), "Recognize") || !strings.Contains(err.Error(), "page 2") {
		t.Fatalf("unexpected message: %s", err.Error())
	}

	again := WrapOCRError("Outer", err, "")
	if again != err {
		t.Fatalf("expected an existing OCRError to be returned unchanged")
	}
}

func TestTesseractEngine_RejectsEmptyImage(t *testing.T) {
	engine := NewTesseractEngine()

	_, err := engine.Recognize(context.Background(), nil)
	if !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}

func TestTesseractEngine_DefaultLanguage(t *testing.T) {
	engine := NewTesseractEngine()
	if len(engine.languages) != 1 || engine.languages[0] != "eng" {
		t.Fatalf("expected default language eng, got %v", engine.languages)
	}
	if engine.Name() != "tesseract" {
		t.Fatalf("unexpected engine name %s", engine.Name())
	}
}

func TestPageConfidence(t *testing.T) {
	annotation := &visionpb.TextAnnotation{
		Text: "ignored",
		Pages: []*visionpb.Page{
			{Confidence: 0.8},
			{Confidence: 0.6},
			{Confidence: 0},
		},
	}
	got := pageConfidence(annotation)
	if got < 0.69 || got > 0.71 {
		t.Fatalf("expected average 0.7, got %v", got)
	}

	fallback := pageConfidence(&visionpb.TextAnnotation{Text: "abcd"})
	if fallback != 1 {
		t.Fatalf("expected heuristic fallback 1, got %v", fallback)
	}
}
