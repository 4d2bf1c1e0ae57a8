package compliance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
)

type memoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Item
}

// NewMemoryRepository builds an in-memory compliance store for development
// and tests. It mirrors the Postgres repository's ownership semantics: a
// mismatched owner is indistinguishable from a missing row.
func NewMemoryRepository() Repository {
	return &memoryRepository{items: make(map[uuid.UUID]Item)}
}

func (r *memoryRepository) Create(_ context.Context, ownerID uuid.UUID, in CreateInput) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	it := Item{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		RiskLevel:   in.RiskLevel,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.items[it.ID] = it
	return it, nil
}

func (r *memoryRepository) Find(_ context.Context, id, ownerID uuid.UUID) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok || it.OwnerID != ownerID {
		return Item{}, apperr.NotFound("compliance item")
	}
	return it, nil
}

func (r *memoryRepository) List(_ context.Context, ownerID uuid.UUID) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]Item, 0)
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
	return items, nil
}

func (r *memoryRepository) Update(_ context.Context, id, ownerID uuid.UUID, in UpdateInput) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.OwnerID != ownerID {
		return Item{}, apperr.NotFound("compliance item")
	}
	if in.Empty() {
		return it, nil
	}
	if in.Title != nil {
		it.Title = *in.Title
	}
	if in.Description != nil {
		it.Description = in.Description
	}
	if in.RiskLevel != nil {
		it.RiskLevel = *in.RiskLevel
	}
	if in.Status != nil {
		it.Status = *in.Status
	}
	if in.DueDate != nil {
		it.DueDate = in.DueDate
	}
	it.UpdatedAt = time.Now().UTC()
	r.items[id] = it
	return it, nil
}

func (r *memoryRepository) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.OwnerID != ownerID {
		return apperr.NotFound("compliance item")
	}
	delete(r.items, id)
	return nil
}
