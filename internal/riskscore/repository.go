package riskscore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comply-core/comply_core/internal/owned"
)

// Repository persists risk scores under the owner-scoping discipline.
type Repository interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Score, error)
	Find(ctx context.Context, id, ownerID uuid.UUID) (Score, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Score, error)
	ListByComplianceItem(ctx context.Context, itemID, ownerID uuid.UUID) ([]Score, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateInput) (Score, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// PostgresRepository stores risk scores in PostgreSQL.
type PostgresRepository struct {
	owned *owned.Repository[Score]
}

// NewPostgresRepository builds a Postgres-backed risk score repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		owned: owned.NewRepository(db, owned.Table[Score]{
			Name:     "risk_scores",
			Resource: "risk score",
			Columns: []string{
				"id", "owner_id", "compliance_item_id", "document_id",
				"risk_category", "risk_score", "risk_level", "assessed_by",
				"notes", "ai_confidence", "ai_reasoning", "assessment_date",
				"created_at", "updated_at",
			},
			Touch: "updated_at",
			Scan:  scanScore,
		}),
	}
}

func scanScore(row pgx.Row) (Score, error) {
	var s Score
	var assessmentDate, createdAt, updatedAt time.Time
	err := row.Scan(&s.ID, &s.OwnerID, &s.ComplianceItemID, &s.DocumentID,
		&s.Category, &s.Value, &s.Level, &s.AssessedBy,
		&s.Notes, &s.AIConfidence, &s.AIReasoning, &assessmentDate,
		&createdAt, &updatedAt)
	if err != nil {
		return Score{}, err
	}
	s.AssessmentDate = assessmentDate.UTC()
	s.CreatedAt = createdAt.UTC()
	s.UpdatedAt = updatedAt.UTC()
	return s, nil
}

// Create inserts a new score with owner_id stamped from the verified
// identity.
func (r *PostgresRepository) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Score, error) {
	return r.owned.Insert(ctx,
		[]string{"id", "owner_id", "compliance_item_id", "document_id", "risk_category",
			"risk_score", "risk_level", "assessed_by", "notes", "ai_confidence", "ai_reasoning"},
		[]any{uuid.New(), ownerID, in.ComplianceItemID, in.DocumentID, in.Category,
			in.Value, in.Level, in.AssessedBy, in.Notes, in.AIConfidence, in.AIReasoning},
	)
}

// Find fetches one owned score.
func (r *PostgresRepository) Find(ctx context.Context, id, ownerID uuid.UUID) (Score, error) {
	return r.owned.Find(ctx, id, ownerID)
}

// List returns the owner's scores, newest first.
func (r *PostgresRepository) List(ctx context.Context, ownerID uuid.UUID) ([]Score, error) {
	return r.owned.List(ctx, ownerID)
}

// ListByComplianceItem returns the owner's scores for one compliance item.
func (r *PostgresRepository) ListByComplianceItem(ctx context.Context, itemID, ownerID uuid.UUID) ([]Score, error) {
	return r.owned.ListBy(ctx, "compliance_item_id", itemID, ownerID)
}

// Update applies a partial update. Field order is fixed by this slice.
func (r *PostgresRepository) Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateInput) (Score, error) {
	return r.owned.Update(ctx, id, ownerID, []owned.Field{
		owned.String("risk_category", in.Category),
		owned.Value("risk_score", in.Value),
		owned.String("risk_level", in.Level),
		owned.String("notes", in.Notes),
		owned.Value("ai_confidence", in.AIConfidence),
		owned.String("ai_reasoning", in.AIReasoning),
	})
}

// Delete removes one owned score.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.owned.Delete(ctx, id, ownerID)
}
