package ocr

import (
	"context"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// VisionEngine runs OCR through the Google Cloud Vision API.
type VisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionEngine creates a Vision client with credentials from the environment.
func NewVisionEngine(ctx context.Context) (*VisionEngine, error) {
	const op = "NewVisionEngine"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &VisionEngine{client: client}, nil
}

func (v *VisionEngine) Name() string {
	return "google_vision"
}

// Recognize sends the image inline with DOCUMENT_TEXT_DETECTION.
func (v *VisionEngine) Recognize(ctx context.Context, image []byte) (*Result, error) {
	const op = "Recognize"

	if len(image) == 0 {
		return nil, WrapOCRError(op, ErrEmptyImage, "")
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, "Vision API call failed: "+err.Error())
	}
	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrOCRFailed, "no response from Vision API")
	}

	imgResp := resp.Responses[0]
	if imgResp.Error != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, "Vision API error: "+imgResp.Error.Message)
	}
	if imgResp.FullTextAnnotation == nil || strings.TrimSpace(imgResp.FullTextAnnotation.Text) == "" {
		return nil, WrapOCRError(op, ErrNoText, "")
	}

	return &Result{
		Text:       strings.TrimSpace(imgResp.FullTextAnnotation.Text),
		Confidence: pageConfidence(imgResp.FullTextAnnotation),
		Engine:     v.Name(),
	}, nil
}

// pageConfidence averages the per-page confidence Vision reports.
func pageConfidence(annotation *visionpb.TextAnnotation) float32 {
	var sum float32
	var n int
	for _, page := range annotation.Pages {
		if page.Confidence > 0 {
			sum += page.Confidence
			n++
		}
	}
	if n == 0 {
		return estimateConfidence(annotation.Text)
	}
	return sum / float32(n)
}

// Close closes the underlying Vision client.
func (v *VisionEngine) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}
