package repository

import (
	"context"
	"fmt"
	"strings"

	"lexiguide/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// Supabase tables. Column names match the JSON tags of the domain types.
const (
	tableDocuments    = "documents"
	tableAnalyses     = "analyses"
	tableChatMessages = "chat_messages"
	tableFeedback     = "feedback"
)

// supabaseRepository holds what every Supabase-backed repository needs.
type supabaseRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// client returns a client scoped to the access token carried by ctx.
func (r supabaseRepository) client(ctx context.Context) (*supabase.Client, error) {
	client, err := r.supabaseClient.GetClientWithToken(domain.AccessTokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}
	return client, nil
}

// stripNUL removes NUL characters, which PostgreSQL rejects in text columns (22P05).
func stripNUL(s string) string {
	if !strings.ContainsRune(s, 0) {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}

type idRow struct {
	ID string `json:"id"`
}
