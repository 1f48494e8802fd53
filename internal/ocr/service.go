// Package ocr turns document images into text.
//
// Two engines are available: a local Tesseract engine (gosseract, requires
// libtesseract at build time) and Google Cloud Vision. Vision reads
// credentials from GOOGLE_CREDENTIALS (inline JSON) or
// GOOGLE_APPLICATION_CREDENTIALS (file path), falling back to application
// default credentials.
package ocr

import (
	"context"
	"unicode"
)

// Engine recognizes text in a single encoded image (PNG, JPEG, TIFF, ...).
type Engine interface {
	Recognize(ctx context.Context, image []byte) (*Result, error)
	Name() string
}

// Result is the text recognized in one image.
type Result struct {
	Text string `json:"text"`

	// Confidence is in [0, 1]. Engines without native confidence report a
	// heuristic estimate.
	Confidence float32 `json:"confidence"`

	Engine string `json:"engine"`
}

// estimateConfidence scores recognized text by the share of letters and
// digits among its non-space characters. OCR noise shows up as stray
// punctuation and symbols.
func estimateConfidence(text string) float32 {
	var total, good int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			good++
		}
	}
	if total == 0 {
		return 0
	}
	return float32(good) / float32(total)
}
