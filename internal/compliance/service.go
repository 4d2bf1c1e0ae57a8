package compliance

import (
	"context"

	"github.com/google/uuid"
)

// Service validates input and applies the ownership convention for
// compliance items. Every operation takes the verified identity's subject
// as ownerID; the repository enforces the scoped filter in a single query.
type Service struct {
	repo Repository
}

// NewService creates a compliance service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new item owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Item, error) {
	if err := in.Validate(); err != nil {
		return Item{}, err
	}
	return s.repo.Create(ctx, ownerID, in)
}

// Get fetches one owned item.
func (s *Service) Get(ctx context.Context, id, ownerID uuid.UUID) (Item, error) {
	return s.repo.Find(ctx, id, ownerID)
}

// List returns the owner's items.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Item, error) {
	return s.repo.List(ctx, ownerID)
}

// Update merges present fields into an owned item. An empty payload reads
// back the current row.
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateInput) (Item, error) {
	if err := in.Validate(); err != nil {
		return Item{}, err
	}
	return s.repo.Update(ctx, id, ownerID, in)
}

// Delete removes an owned item.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.repo.Delete(ctx, id, ownerID)
}
