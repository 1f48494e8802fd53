package handler

import (
	"encoding/json"
	"net/http"

	"lexiguide/internal/domain"
)

type FeedbackHandler struct {
	feedbackService domain.FeedbackService
	logger          domain.Logger
}

func NewFeedbackHandler(feedbackService domain.FeedbackService, logger domain.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

type feedbackRequest struct {
	DocumentID *string `json:"document_id"`
	AnalysisID *string `json:"analysis_id"`
	Rating     int     `json:"rating"`
	Comment    string  `json:"comment"`
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fb, err := h.feedbackService.Submit(r.Context(), ownerID, &domain.Feedback{
		DocumentID: req.DocumentID,
		AnalysisID: req.AnalysisID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, fb)
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	items, err := h.feedbackService.List(r.Context(), ownerID)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if items == nil {
		items = make([]*domain.Feedback, 0)
	}
	writeJSON(w, http.StatusOK, items)
}
