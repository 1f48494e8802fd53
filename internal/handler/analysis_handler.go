package handler

import (
	"net/http"

	"lexiguide/internal/domain"

	"github.com/gorilla/mux"
)

type AnalysisHandler struct {
	analysisService domain.AnalysisService
	logger          domain.Logger
}

func NewAnalysisHandler(analysisService domain.AnalysisService, logger domain.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

// Analyze runs a new analysis of the document.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	analysis, err := h.analysisService.Analyze(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, analysis)
}

// ListForDocument returns earlier analyses of one document, newest first.
func (h *AnalysisHandler) ListForDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	analyses, err := h.analysisService.ListForDocument(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilAnalyses(analyses))
}

// History returns every analysis the caller ran.
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	analyses, err := h.analysisService.History(r.Context(), ownerID)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilAnalyses(analyses))
}

func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	analysis, err := h.analysisService.GetAnalysis(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func nonNilAnalyses(a []*domain.Analysis) []*domain.Analysis {
	if a == nil {
		return make([]*domain.Analysis, 0)
	}
	return a
}
