package handler

import (
	"net/http"
	"strconv"

	"lexiguide/internal/domain"
)

type SpecialistHandler struct {
	specialistService domain.SpecialistService
	logger            domain.Logger
}

func NewSpecialistHandler(specialistService domain.SpecialistService, logger domain.Logger) *SpecialistHandler {
	return &SpecialistHandler{
		specialistService: specialistService,
		logger:            logger,
	}
}

// Recommend handles GET /specialists?location=...&limit=N.
func (h *SpecialistHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rec, err := h.specialistService.Recommend(r.Context(), q.Get("location"), limit)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
