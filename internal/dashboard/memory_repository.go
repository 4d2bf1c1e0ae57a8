package dashboard

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/compliance"
	"github.com/comply-core/comply_core/internal/document"
)

// memoryRepository computes the same aggregates as the SQL queries from the
// in-memory domain repositories. Used in development and tests.
type memoryRepository struct {
	items compliance.Repository
	docs  document.Repository
}

// NewMemoryRepository builds a dashboard over in-memory domain stores.
func NewMemoryRepository(items compliance.Repository, docs document.Repository) Repository {
	return &memoryRepository{items: items, docs: docs}
}

func (r *memoryRepository) ComplianceStats(ctx context.Context, ownerID uuid.UUID) (ComplianceStats, error) {
	items, err := r.items.List(ctx, ownerID)
	if err != nil {
		return ComplianceStats{}, err
	}
	var s ComplianceStats
	s.Total = int64(len(items))
	for _, it := range items {
		switch it.Status {
		case compliance.StatusPending:
			s.Pending++
		case compliance.StatusInProgress:
			s.InProgress++
		case compliance.StatusCompleted:
			s.Completed++
		case compliance.StatusExpired:
			s.Expired++
		}
	}
	return s, nil
}

func (r *memoryRepository) DocumentStats(ctx context.Context, ownerID uuid.UUID) (DocumentStats, error) {
	docs, err := r.docs.List(ctx, ownerID)
	if err != nil {
		return DocumentStats{}, err
	}
	var s DocumentStats
	s.Total = int64(len(docs))
	for _, d := range docs {
		if d.AIAnalysis != nil {
			s.Analyzed++
		}
	}
	return s, nil
}

func (r *memoryRepository) RecentActivity(ctx context.Context, ownerID uuid.UUID, limit int) ([]Activity, error) {
	items, err := r.items.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	docs, err := r.docs.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(items)+len(docs))
	for _, it := range items {
		activities = append(activities, Activity{
			ID: it.ID, Type: "compliance_created", Title: it.Title, Timestamp: it.CreatedAt,
		})
	}
	for _, d := range docs {
		activities = append(activities, Activity{
			ID: d.ID, Type: "document_uploaded", Title: d.Filename, Timestamp: d.UploadedAt,
		})
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}
