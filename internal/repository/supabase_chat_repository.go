package repository

import (
	"context"
	"fmt"

	"lexiguide/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

type SupabaseChatRepository struct {
	supabaseRepository
}

func NewSupabaseChatRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseChatRepository {
	return &SupabaseChatRepository{supabaseRepository{supabaseClient: supabaseClient, logger: logger}}
}

// Append inserts every message in one request, which PostgREST runs as a
// single statement.
func (r *SupabaseChatRepository) Append(ctx context.Context, msgs ...*domain.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	rows := make([]domain.ChatMessage, 0, len(msgs))
	for _, msg := range msgs {
		if err := msg.Validate(); err != nil {
			return err
		}
		row := *msg
		row.Content = stripNUL(row.Content)
		rows = append(rows, row)
	}

	client, err := r.client(ctx)
	if err != nil {
		return err
	}
	if _, _, err := client.From(tableChatMessages).Insert(rows, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	return nil
}

func (r *SupabaseChatRepository) ListByDocument(ctx context.Context, ownerID, documentID string) ([]*domain.ChatMessage, error) {
	client, err := r.client(ctx)
	if err != nil {
		return nil, err
	}

	var rows []domain.ChatMessage
	_, err = client.From(tableChatMessages).
		Select("*", "", false).
		Eq("owner_id", ownerID).
		Eq("document_id", documentID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	out := make([]*domain.ChatMessage, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

func (r *SupabaseChatRepository) ClearByDocument(ctx context.Context, ownerID, documentID string) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	_, _, err = client.From(tableChatMessages).
		Delete("minimal", "").
		Eq("owner_id", ownerID).
		Eq("document_id", documentID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}

var _ domain.ChatRepository = (*SupabaseChatRepository)(nil)
