package domain

import "errors"

// Domain errors
var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrAnalysisNotFound   = errors.New("analysis not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrEmptyDocument      = errors.New("document contains no readable text")
	ErrFileTooLarge       = errors.New("file too large")
	ErrTermNotFound       = errors.New("term not found")
	ErrLocationNotFound   = errors.New("location not found")
	ErrServiceUnavailable = errors.New("service not configured")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
