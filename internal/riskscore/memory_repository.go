package riskscore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
)

type memoryRepository struct {
	mu     sync.RWMutex
	scores map[uuid.UUID]Score
}

// NewMemoryRepository builds an in-memory risk score store for development
// and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{scores: make(map[uuid.UUID]Score)}
}

func (r *memoryRepository) Create(_ context.Context, ownerID uuid.UUID, in CreateInput) (Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	s := Score{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		ComplianceItemID: in.ComplianceItemID,
		DocumentID:       in.DocumentID,
		Category:         in.Category,
		Value:            in.Value,
		Level:            in.Level,
		AssessedBy:       in.AssessedBy,
		Notes:            in.Notes,
		AIConfidence:     in.AIConfidence,
		AIReasoning:      in.AIReasoning,
		AssessmentDate:   now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.scores[s.ID] = s
	return s, nil
}

func (r *memoryRepository) Find(_ context.Context, id, ownerID uuid.UUID) (Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scores[id]
	if !ok || s.OwnerID != ownerID {
		return Score{}, apperr.NotFound("risk score")
	}
	return s, nil
}

func (r *memoryRepository) List(_ context.Context, ownerID uuid.UUID) ([]Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scores := make([]Score, 0)
	for _, s := range r.scores {
		if s.OwnerID == ownerID {
			scores = append(scores, s)
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		if !scores[i].CreatedAt.Equal(scores[j].CreatedAt) {
			return scores[i].CreatedAt.After(scores[j].CreatedAt)
		}
		return scores[i].ID.String() < scores[j].ID.String()
	})
	return scores, nil
}

func (r *memoryRepository) ListByComplianceItem(_ context.Context, itemID, ownerID uuid.UUID) ([]Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scores := make([]Score, 0)
	for _, s := range r.scores {
		if s.OwnerID == ownerID && s.ComplianceItemID == itemID {
			scores = append(scores, s)
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		if !scores[i].CreatedAt.Equal(scores[j].CreatedAt) {
			return scores[i].CreatedAt.After(scores[j].CreatedAt)
		}
		return scores[i].ID.String() < scores[j].ID.String()
	})
	return scores, nil
}

func (r *memoryRepository) Update(_ context.Context, id, ownerID uuid.UUID, in UpdateInput) (Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scores[id]
	if !ok || s.OwnerID != ownerID {
		return Score{}, apperr.NotFound("risk score")
	}
	if in.Empty() {
		return s, nil
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.Value != nil {
		s.Value = *in.Value
	}
	if in.Level != nil {
		s.Level = *in.Level
	}
	if in.Notes != nil {
		s.Notes = in.Notes
	}
	if in.AIConfidence != nil {
		s.AIConfidence = in.AIConfidence
	}
	if in.AIReasoning != nil {
		s.AIReasoning = in.AIReasoning
	}
	s.UpdatedAt = time.Now().UTC()
	r.scores[id] = s
	return s, nil
}

func (r *memoryRepository) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scores[id]
	if !ok || s.OwnerID != ownerID {
		return apperr.NotFound("risk score")
	}
	delete(r.scores, id)
	return nil
}
