package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lexiguide/internal/domain"
	apperrors "lexiguide/pkg/errors"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	ownerContextKey contextKey = "owner"
)

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetOwnerFromContext returns the ID that scopes the caller's data: the
// Supabase user ID or the anonymous session ID.
func GetOwnerFromContext(r *http.Request) (string, bool) {
	owner, ok := r.Context().Value(ownerContextKey).(string)
	return owner, ok && owner != ""
}

func withOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerContextKey, ownerID)
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps service errors to a status code and message. Unknown
// errors are logged and reported as 500 without their details.
func writeAppError(w http.ResponseWriter, logger domain.Logger, err error) {
	var verr *domain.ValidationError
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, "Document not found")
	case errors.Is(err, domain.ErrAnalysisNotFound):
		writeError(w, http.StatusNotFound, "Analysis not found")
	case errors.Is(err, domain.ErrTermNotFound):
		writeError(w, http.StatusNotFound, "No definition found for this term")
	case errors.Is(err, domain.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, "Unable to find specialists in your area")
	case errors.Is(err, domain.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmptyDocument):
		writeError(w, http.StatusUnprocessableEntity, "Document contains no readable text")
	case errors.Is(err, domain.ErrFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, domain.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "AI service not configured (missing OPENAI_API_KEY or GCP_PROJECT_ID)")
	case errors.As(err, &appErr):
		if appErr.StatusCode >= http.StatusInternalServerError {
			logger.Error("Request failed", err, "type", appErr.Type)
		}
		writeError(w, appErr.StatusCode, appErr.Message)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "Request timed out")
	default:
		logger.Error("Unhandled error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
