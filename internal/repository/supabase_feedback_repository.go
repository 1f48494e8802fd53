package repository

import (
	"context"
	"fmt"

	"lexiguide/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

type SupabaseFeedbackRepository struct {
	supabaseRepository
}

func NewSupabaseFeedbackRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseFeedbackRepository {
	return &SupabaseFeedbackRepository{supabaseRepository{supabaseClient: supabaseClient, logger: logger}}
}

func (r *SupabaseFeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	row := *fb
	row.Comment = stripNUL(row.Comment)

	if _, _, err := client.From(tableFeedback).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *SupabaseFeedbackRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Feedback, error) {
	client, err := r.client(ctx)
	if err != nil {
		return nil, err
	}

	var rows []domain.Feedback
	_, err = client.From(tableFeedback).
		Select("*", "", false).
		Eq("owner_id", ownerID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	out := make([]*domain.Feedback, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

var _ domain.FeedbackRepository = (*SupabaseFeedbackRepository)(nil)
