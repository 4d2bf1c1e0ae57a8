package compliance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comply-core/comply_core/internal/owned"
)

// Repository persists compliance items under the owner-scoping discipline.
type Repository interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Item, error)
	Find(ctx context.Context, id, ownerID uuid.UUID) (Item, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Item, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateInput) (Item, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// PostgresRepository stores compliance items in PostgreSQL via the generic
// owner-scoped repository.
type PostgresRepository struct {
	owned *owned.Repository[Item]
}

// NewPostgresRepository builds a Postgres-backed compliance repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		owned: owned.NewRepository(db, owned.Table[Item]{
			Name:     "compliance_items",
			Resource: "compliance item",
			Columns: []string{
				"id", "owner_id", "title", "description",
				"risk_level", "status", "due_date", "created_at", "updated_at",
			},
			Touch: "updated_at",
			Scan:  scanItem,
		}),
	}
}

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	var createdAt, updatedAt time.Time
	err := row.Scan(&it.ID, &it.OwnerID, &it.Title, &it.Description,
		&it.RiskLevel, &it.Status, &it.DueDate, &createdAt, &updatedAt)
	if err != nil {
		return Item{}, err
	}
	it.CreatedAt = createdAt.UTC()
	it.UpdatedAt = updatedAt.UTC()
	return it, nil
}

// Create inserts a new item with owner_id stamped from the verified
// identity.
func (r *PostgresRepository) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Item, error) {
	return r.owned.Insert(ctx,
		[]string{"id", "owner_id", "title", "description", "risk_level", "status", "due_date"},
		[]any{uuid.New(), ownerID, in.Title, in.Description, in.RiskLevel, in.Status, in.DueDate},
	)
}

// Find fetches one owned item.
func (r *PostgresRepository) Find(ctx context.Context, id, ownerID uuid.UUID) (Item, error) {
	return r.owned.Find(ctx, id, ownerID)
}

// List returns the owner's items, newest first.
func (r *PostgresRepository) List(ctx context.Context, ownerID uuid.UUID) ([]Item, error) {
	return r.owned.List(ctx, ownerID)
}

// Update applies a partial update. Field order is fixed by this slice.
func (r *PostgresRepository) Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateInput) (Item, error) {
	return r.owned.Update(ctx, id, ownerID, []owned.Field{
		owned.String("title", in.Title),
		owned.String("description", in.Description),
		owned.String("risk_level", in.RiskLevel),
		owned.String("status", in.Status),
		owned.Value("due_date", in.DueDate),
	})
}

// Delete removes one owned item.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.owned.Delete(ctx, id, ownerID)
}
