package document

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
)

type memoryRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]Document
}

// NewMemoryRepository builds an in-memory document store for development
// and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{docs: make(map[uuid.UUID]Document)}
}

func (r *memoryRepository) Create(_ context.Context, doc Document) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.UploadedAt = time.Now().UTC()
	r.docs[doc.ID] = doc
	return doc, nil
}

func (r *memoryRepository) Find(_ context.Context, id, ownerID uuid.UUID) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	if !ok || d.OwnerID != ownerID {
		return Document{}, apperr.NotFound("document")
	}
	return d, nil
}

func (r *memoryRepository) List(_ context.Context, ownerID uuid.UUID) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]Document, 0)
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.After(docs[j].UploadedAt)
		}
		return docs[i].ID.String() < docs[j].ID.String()
	})
	return docs, nil
}

func (r *memoryRepository) Update(_ context.Context, id, ownerID uuid.UUID, in UpdateInput) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.OwnerID != ownerID {
		return Document{}, apperr.NotFound("document")
	}
	if in.ExtractedText != nil {
		d.ExtractedText = in.ExtractedText
	}
	if in.AIAnalysis != nil {
		d.AIAnalysis = in.AIAnalysis
	}
	r.docs[id] = d
	return d, nil
}

func (r *memoryRepository) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.OwnerID != ownerID {
		return apperr.NotFound("document")
	}
	delete(r.docs, id)
	return nil
}
