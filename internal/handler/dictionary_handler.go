package handler

import (
	"net/http"
	"strconv"

	"lexiguide/internal/domain"

	"github.com/gorilla/mux"
)

type DictionaryHandler struct {
	dictionaryService domain.DictionaryService
	logger            domain.Logger
}

func NewDictionaryHandler(dictionaryService domain.DictionaryService, logger domain.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		dictionaryService: dictionaryService,
		logger:            logger,
	}
}

// Lookup defines a term. ?legal=false skips the legal-context explanation.
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	legal := true
	if v := r.URL.Query().Get("legal"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "legal must be true or false")
			return
		}
		legal = parsed
	}

	entry, err := h.dictionaryService.Lookup(r.Context(), mux.Vars(r)["term"], legal)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
