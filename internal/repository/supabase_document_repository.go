package repository

import (
	"context"
	"fmt"

	"lexiguide/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// documentListColumns omits the text column, which list views never show.
const documentListColumns = "id,owner_id,name,mime_type,format,page_count,word_count,file_size,extraction,created_at,updated_at"

// SupabaseDocumentRepository implements the domain.DocumentRepository interface
type SupabaseDocumentRepository struct {
	supabaseRepository
}

// NewSupabaseDocumentRepository creates a new Supabase document repository
func NewSupabaseDocumentRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseDocumentRepository {
	return &SupabaseDocumentRepository{supabaseRepository{supabaseClient: supabaseClient, logger: logger}}
}

// Create a new document in Supabase
func (r *SupabaseDocumentRepository) Create(ctx context.Context, document *domain.Document) error {
	if err := document.Validate(); err != nil {
		return err
	}
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	row := *document
	row.Name = stripNUL(row.Name)
	row.Text = stripNUL(row.Text)

	if _, _, err := client.From(tableDocuments).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		r.logger.Error("Failed to insert document in Supabase", err,
			"doc_id", document.ID,
			"text_length", len(row.Text),
		)
		return fmt.Errorf("failed to create document: %w", err)
	}

	r.logger.Info("Document created", "id", document.ID, "owner_id", document.OwnerID)
	return nil
}

func (r *SupabaseDocumentRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Document, error) {
	client, err := r.client(ctx)
	if err != nil {
		return nil, err
	}

	var documents []domain.Document
	_, err = client.From(tableDocuments).
		Select("*", "", false).
		Eq("id", id).
		Eq("owner_id", ownerID).
		Limit(1, "").
		ExecuteTo(&documents)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if len(documents) == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return &documents[0], nil
}

func (r *SupabaseDocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	client, err := r.client(ctx)
	if err != nil {
		return nil, err
	}

	var rows []domain.Document
	_, err = client.From(tableDocuments).
		Select(documentListColumns, "", false).
		Eq("owner_id", ownerID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}

	documents := make([]*domain.Document, 0, len(rows))
	for i := range rows {
		documents = append(documents, &rows[i])
	}
	return documents, nil
}

func (r *SupabaseDocumentRepository) Delete(ctx context.Context, ownerID, id string) error {
	client, err := r.client(ctx)
	if err != nil {
		return err
	}

	var deleted []idRow
	_, err = client.From(tableDocuments).
		Delete("representation", "").
		Eq("id", id).
		Eq("owner_id", ownerID).
		ExecuteTo(&deleted)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if len(deleted) == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

var _ domain.DocumentRepository = (*SupabaseDocumentRepository)(nil)
