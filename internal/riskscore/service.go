package riskscore

import (
	"context"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/compliance"
)

// Service validates input and applies the ownership convention for risk
// scores. A score can only reference a compliance item the same owner can
// see; the reference check runs through the item repository's scoped query.
type Service struct {
	repo  Repository
	items compliance.Repository
}

// NewService creates a risk score service.
func NewService(repo Repository, items compliance.Repository) *Service {
	return &Service{repo: repo, items: items}
}

// Create stores a new score owned by ownerID after confirming the target
// compliance item is owned by the same identity.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Score, error) {
	if err := in.Validate(); err != nil {
		return Score{}, err
	}
	if _, err := s.items.Find(ctx, in.ComplianceItemID, ownerID); err != nil {
		return Score{}, err
	}
	return s.repo.Create(ctx, ownerID, in)
}

// Get fetches one owned score.
func (s *Service) Get(ctx context.Context, id, ownerID uuid.UUID) (Score, error) {
	return s.repo.Find(ctx, id, ownerID)
}

// List returns the owner's scores.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Score, error) {
	return s.repo.List(ctx, ownerID)
}

// ListByComplianceItem returns the owner's scores attached to one compliance
// item. A foreign or absent item simply yields an empty list; the scoped
// query cannot match another tenant's scores.
func (s *Service) ListByComplianceItem(ctx context.Context, itemID, ownerID uuid.UUID) ([]Score, error) {
	return s.repo.ListByComplianceItem(ctx, itemID, ownerID)
}

// Update merges present fields into an owned score.
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateInput) (Score, error) {
	if err := in.Validate(); err != nil {
		return Score{}, err
	}
	return s.repo.Update(ctx, id, ownerID, in)
}

// Delete removes an owned score.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.repo.Delete(ctx, id, ownerID)
}
