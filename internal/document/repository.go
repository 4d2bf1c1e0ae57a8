package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comply-core/comply_core/internal/owned"
)

// Repository persists document records under the owner-scoping discipline.
type Repository interface {
	Create(ctx context.Context, doc Document) (Document, error)
	Find(ctx context.Context, id, ownerID uuid.UUID) (Document, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Document, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateInput) (Document, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// PostgresRepository stores documents in PostgreSQL.
type PostgresRepository struct {
	owned *owned.Repository[Document]
}

// NewPostgresRepository builds a Postgres-backed document repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		owned: owned.NewRepository(db, owned.Table[Document]{
			Name:     "documents",
			Resource: "document",
			Columns: []string{
				"id", "owner_id", "filename", "file_path", "file_size",
				"mime_type", "extracted_text", "ai_analysis", "uploaded_at",
			},
			OrderBy: "uploaded_at DESC, id ASC",
			Scan:    scanDocument,
		}),
	}
}

func scanDocument(row pgx.Row) (Document, error) {
	var d Document
	var uploadedAt time.Time
	var analysis []byte
	err := row.Scan(&d.ID, &d.OwnerID, &d.Filename, &d.FilePath, &d.FileSize,
		&d.MimeType, &d.ExtractedText, &analysis, &uploadedAt)
	if err != nil {
		return Document{}, err
	}
	d.AIAnalysis = analysis
	d.UploadedAt = uploadedAt.UTC()
	return d, nil
}

// Create inserts an uploaded document record.
func (r *PostgresRepository) Create(ctx context.Context, doc Document) (Document, error) {
	return r.owned.Insert(ctx,
		[]string{"id", "owner_id", "filename", "file_path", "file_size", "mime_type", "extracted_text"},
		[]any{doc.ID, doc.OwnerID, doc.Filename, doc.FilePath, doc.FileSize, doc.MimeType, doc.ExtractedText},
	)
}

// Find fetches one owned document.
func (r *PostgresRepository) Find(ctx context.Context, id, ownerID uuid.UUID) (Document, error) {
	return r.owned.Find(ctx, id, ownerID)
}

// List returns the owner's documents, newest upload first.
func (r *PostgresRepository) List(ctx context.Context, ownerID uuid.UUID) ([]Document, error) {
	return r.owned.List(ctx, ownerID)
}

// Update applies a partial update over the two patchable columns.
func (r *PostgresRepository) Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateInput) (Document, error) {
	return r.owned.Update(ctx, id, ownerID, []owned.Field{
		owned.String("extracted_text", in.ExtractedText),
		{Column: "ai_analysis", Value: []byte(in.AIAnalysis), Set: in.AIAnalysis != nil},
	})
}

// Delete removes one owned document record.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.owned.Delete(ctx, id, ownerID)
}
