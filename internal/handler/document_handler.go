// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"

	"lexiguide/internal/domain"

	"github.com/gorilla/mux"
)

// multipartOverhead allows for the form framing around the uploaded file.
const multipartOverhead = 1 << 20

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	documentService domain.DocumentService
	maxFileSize     int64
	logger          domain.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService domain.DocumentService, maxFileSize int64, logger domain.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// UploadDocument handles a multipart upload in the "file" field.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	doc, err := h.documentService.Upload(r.Context(), ownerID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// GetDocuments lists the caller's documents without their text.
func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	docs, err := h.documentService.ListDocuments(r.Context(), ownerID)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if docs == nil {
		docs = make([]*domain.Document, 0)
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	doc, err := h.documentService.GetDocument(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	if err := h.documentService.DeleteDocument(r.Context(), ownerID, mux.Vars(r)["id"]); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}
