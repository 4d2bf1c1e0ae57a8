package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comply-core/comply_core/internal/apperr"
)

// ComplianceStats counts the owner's compliance items by status.
type ComplianceStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Expired    int64 `json:"expired"`
}

// DocumentStats counts the owner's documents and how many carry an analysis.
type DocumentStats struct {
	Total    int64 `json:"total"`
	Analyzed int64 `json:"analyzed"`
}

// Activity is one recent event in the owner's account.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"activity_type"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// Repository runs owner-scoped aggregation queries.
type Repository interface {
	ComplianceStats(ctx context.Context, ownerID uuid.UUID) (ComplianceStats, error)
	DocumentStats(ctx context.Context, ownerID uuid.UUID) (DocumentStats, error)
	RecentActivity(ctx context.Context, ownerID uuid.UUID, limit int) ([]Activity, error)
}

// PostgresRepository aggregates directly in SQL. Every query filters by
// owner_id; nothing aggregates across tenants.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed dashboard repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ComplianceStats counts items by status in a single scoped query.
func (r *PostgresRepository) ComplianceStats(ctx context.Context, ownerID uuid.UUID) (ComplianceStats, error) {
	var s ComplianceStats
	err := r.db.QueryRow(ctx, `SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'pending'),
            COUNT(*) FILTER (WHERE status = 'in_progress'),
            COUNT(*) FILTER (WHERE status = 'completed'),
            COUNT(*) FILTER (WHERE status = 'expired')
        FROM compliance_items WHERE owner_id = $1`, ownerID).
		Scan(&s.Total, &s.Pending, &s.InProgress, &s.Completed, &s.Expired)
	if err != nil {
		return ComplianceStats{}, apperr.Storage("compliance stats", err)
	}
	return s, nil
}

// DocumentStats counts documents and analyzed documents.
func (r *PostgresRepository) DocumentStats(ctx context.Context, ownerID uuid.UUID) (DocumentStats, error) {
	var s DocumentStats
	err := r.db.QueryRow(ctx, `SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE ai_analysis IS NOT NULL)
        FROM documents WHERE owner_id = $1`, ownerID).
		Scan(&s.Total, &s.Analyzed)
	if err != nil {
		return DocumentStats{}, apperr.Storage("document stats", err)
	}
	return s, nil
}

// RecentActivity merges compliance creations and document uploads, newest
// first.
func (r *PostgresRepository) RecentActivity(ctx context.Context, ownerID uuid.UUID, limit int) ([]Activity, error) {
	rows, err := r.db.Query(ctx, `SELECT id, 'compliance_created', title, created_at
            FROM compliance_items WHERE owner_id = $1
        UNION ALL
        SELECT id, 'document_uploaded', filename, uploaded_at
            FROM documents WHERE owner_id = $1
        ORDER BY 4 DESC LIMIT $2`, ownerID, limit)
	if err != nil {
		return nil, apperr.Storage("recent activity", err)
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		var a Activity
		var ts time.Time
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &ts); err != nil {
			return nil, apperr.Storage("scan activity", err)
		}
		a.Timestamp = ts.UTC()
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("recent activity", err)
	}
	return activities, nil
}
