package handler

import (
	"encoding/json"
	"net/http"

	"lexiguide/internal/domain"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatService domain.ChatService
	logger      domain.Logger
}

func NewChatHandler(chatService domain.ChatService, logger domain.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Ask answers a question about the document.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	var req domain.QuestionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.chatService.Ask(r.Context(), ownerID, mux.Vars(r)["id"], req.Question)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	msgs, err := h.chatService.History(r.Context(), ownerID, mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if msgs == nil {
		msgs = make([]*domain.ChatMessage, 0)
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	if err := h.chatService.Clear(r.Context(), ownerID, mux.Vars(r)["id"]); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat history cleared"})
}
