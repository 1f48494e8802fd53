package handler

import (
	"context"
	"net/http"
	"strings"

	"lexiguide/internal/domain"

	"github.com/google/uuid"
)

const (
	sessionCookieName   = "lexiguide_session"
	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// OwnerMiddleware resolves who a request acts for. With an AuthService it
// requires a Supabase bearer token; without one every browser gets an
// anonymous session cookie.
type OwnerMiddleware struct {
	authService domain.AuthService
	logger      domain.Logger
}

// NewOwnerMiddleware creates the middleware. authService may be nil.
func NewOwnerMiddleware(authService domain.AuthService, logger domain.Logger) *OwnerMiddleware {
	return &OwnerMiddleware{
		authService: authService,
		logger:      logger,
	}
}

func (m *OwnerMiddleware) Middleware(next http.Handler) http.Handler {
	if m.authService == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID := m.sessionID(w, r)
			next.ServeHTTP(w, r.WithContext(withOwner(r.Context(), ownerID)))
		})
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>" format
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Token required")
			return
		}

		user, err := m.authService.ValidateToken(token)
		if err != nil {
			m.logger.Warn("Token validation failed", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		ctx = withOwner(ctx, user.ID)
		ctx = domain.WithAccessToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID returns the caller's session cookie, issuing a new one when the
// cookie is missing or malformed.
func (m *OwnerMiddleware) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	m.logger.Debug("Issued anonymous session", "session_id", id)
	return id
}
