package handler

import (
	"net/http"
)

// AuthHandler reports who the caller is.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type sessionResponse struct {
	OwnerID       string `json:"owner_id"`
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

// GetSession returns the owner ID the request resolved to and, for
// Supabase users, their email.
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetOwnerFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Owner not found in context")
		return
	}

	resp := sessionResponse{OwnerID: ownerID}
	if user, ok := GetUserFromContext(r); ok {
		resp.Authenticated = true
		resp.Email = user.Email
	}
	writeJSON(w, http.StatusOK, resp)
}
