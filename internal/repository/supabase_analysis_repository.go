package repository

import (
	"context"
	"fmt"

	"lexiguide/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

type SupabaseAnalysisRepository struct {
	supabaseRepository
}

func NewSupabaseAnalysisRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseAnalysisRepository {
	return &SupabaseAnalysisRepository{supabaseRepository{supabaseClient: supabaseClient, logger: logger}}
}

func (r *SupabaseAnalysisRepository) Create(ctx context.Context, analysis *domain.Analysis) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	row := *analysis
	row.Summary = stripNUL(row.Summary)
	row.Terms = stripNUL(row.Terms)

	if _, _, err := client.From(tableAnalyses).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *SupabaseAnalysisRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Analysis, error) {
	client, err := r.client(ctx)
	if err != nil {
		return nil, err
	}

	var rows []domain.Analysis
	_, err = client.From(tableAnalyses).
		Select("*", "", false).
		Eq("id", id).
		Eq("owner_id", ownerID).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrAnalysisNotFound
	}
	return &rows[0], nil
}

func (r *SupabaseAnalysisRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Analysis, error) {
	return r.list(ctx, map[string]string{"owner_id": ownerID})
}

func (r *SupabaseAnalysisRepository) ListByDocument(ctx context.Context, ownerID, documentID string) ([]*domain.Analysis, error) {
	return r.list(ctx, map[string]string{"owner_id": ownerID, "document_id": documentID})
}

func (r *SupabaseAnalysisRepository) list(ctx context.Context, match map[string]string) ([]*domain.Analysis, error) {
	client, err := r.client(ctx)
	if err != nil {
		return nil, err
	}

	var rows []domain.Analysis
	_, err = client.From(tableAnalyses).
		Select("*", "", false).
		Match(match).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	out := make([]*domain.Analysis, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

var _ domain.AnalysisRepository = (*SupabaseAnalysisRepository)(nil)
