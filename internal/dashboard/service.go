package dashboard

import (
	"context"

	"github.com/google/uuid"
)

const defaultActivityLimit = 10

// Overview is the dashboard payload.
type Overview struct {
	Compliance     ComplianceStats `json:"compliance"`
	Documents      DocumentStats   `json:"documents"`
	RecentActivity []Activity      `json:"recent_activity"`
}

// Service assembles the per-owner dashboard.
type Service struct {
	repo Repository
}

// NewService creates a dashboard service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Overview gathers all aggregates for one owner.
func (s *Service) Overview(ctx context.Context, ownerID uuid.UUID) (Overview, error) {
	compliance, err := s.repo.ComplianceStats(ctx, ownerID)
	if err != nil {
		return Overview{}, err
	}
	documents, err := s.repo.DocumentStats(ctx, ownerID)
	if err != nil {
		return Overview{}, err
	}
	activity, err := s.repo.RecentActivity(ctx, ownerID, defaultActivityLimit)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Compliance: compliance, Documents: documents, RecentActivity: activity}, nil
}
