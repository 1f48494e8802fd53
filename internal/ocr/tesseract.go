package ocr

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine runs OCR locally with libtesseract.
type TesseractEngine struct {
	languages []string
}

// NewTesseractEngine creates an engine for the given languages ("eng" when empty).
func NewTesseractEngine(languages ...string) *TesseractEngine {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractEngine{languages: languages}
}

func (t *TesseractEngine) Name() string {
	return "tesseract"
}

// Recognize performs OCR on an encoded image.
func (t *TesseractEngine) Recognize(ctx context.Context, image []byte) (*Result, error) {
	const op = "Recognize"

	if len(image) == 0 {
		return nil, WrapOCRError(op, ErrEmptyImage, "")
	}
	if err := ctx.Err(); err != nil {
		return nil, WrapOCRError(op, err, "")
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, "set language: "+err.Error())
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, "set image: "+err.Error())
	}

	text, err := client.Text()
	if err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, err.Error())
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, WrapOCRError(op, ErrNoText, "")
	}

	return &Result{
		Text:       text,
		Confidence: estimateConfidence(text),
		Engine:     t.Name(),
	}, nil
}
