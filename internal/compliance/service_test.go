package compliance

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
)

func strPtr(s string) *string { return &s }

func newItem(t *testing.T, svc *Service, owner uuid.UUID) Item {
	t.Helper()
	item, err := svc.Create(context.Background(), owner, CreateInput{
		Title:     "GDPR data audit",
		RiskLevel: RiskHigh,
		Status:    StatusPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return item
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	appErr, ok := apperr.As(err)
	if !ok || appErr.Category != apperr.CategoryNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCreateStampsOwner(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	owner := uuid.New()

	item := newItem(t, svc, owner)
	if item.OwnerID != owner {
		t.Fatalf("expected owner %s got %s", owner, item.OwnerID)
	}
	if item.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
}

func TestCrossTenantAccessIsNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	alice, mallory := uuid.New(), uuid.New()

	item := newItem(t, svc, alice)

	_, err := svc.Get(ctx, item.ID, mallory)
	requireNotFound(t, err)

	_, err = svc.Update(ctx, item.ID, mallory, UpdateInput{Title: strPtr("hijacked")})
	requireNotFound(t, err)

	requireNotFound(t, svc.Delete(ctx, item.ID, mallory))

	// Nothing was mutated and the item is still visible to its owner.
	got, err := svc.Get(ctx, item.ID, alice)
	if err != nil {
		t.Fatalf("owner get after foreign attempts: %v", err)
	}
	if got.Title != "GDPR data audit" {
		t.Fatalf("item was mutated by a foreign tenant: %q", got.Title)
	}
}

func TestPartialUpdateMergesSingleField(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := uuid.New()

	item, err := svc.Create(ctx, owner, CreateInput{
		Title:       "SOC2 evidence collection",
		Description: strPtr("quarterly"),
		RiskLevel:   RiskMedium,
		Status:      StatusPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, item.ID, owner, UpdateInput{Status: strPtr(StatusInProgress)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != StatusInProgress {
		t.Fatalf("status not updated: %s", updated.Status)
	}
	if updated.Title != item.Title || updated.RiskLevel != item.RiskLevel {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
	if updated.Description == nil || *updated.Description != "quarterly" {
		t.Fatalf("description changed: %v", updated.Description)
	}
}

func TestEmptyUpdateReturnsCurrentRow(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := uuid.New()

	item := newItem(t, svc, owner)

	got, err := svc.Update(ctx, item.ID, owner, UpdateInput{})
	if err != nil {
		t.Fatalf("empty update must succeed: %v", err)
	}
	if got.ID != item.ID || got.Title != item.Title || !got.UpdatedAt.Equal(item.UpdatedAt) {
		t.Fatalf("empty update must return the unchanged item: %+v vs %+v", got, item)
	}
}

func TestListIsOwnerScopedAndOrdered(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	newItem(t, svc, alice)
	newItem(t, svc, alice)
	newItem(t, svc, bob)

	items, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items for alice, got %d", len(items))
	}
	for _, it := range items {
		if it.OwnerID != alice {
			t.Fatalf("foreign item leaked into list: %+v", it)
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].CreatedAt.Before(items[i].CreatedAt) {
			t.Fatalf("list not ordered newest first")
		}
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := uuid.New()

	cases := []CreateInput{
		{Title: "ab", RiskLevel: RiskLow, Status: StatusPending},
		{Title: "valid title", RiskLevel: "extreme", Status: StatusPending},
		{Title: "valid title", RiskLevel: RiskLow, Status: "done"},
	}
	for i, in := range cases {
		_, err := svc.Create(ctx, owner, in)
		appErr, ok := apperr.As(err)
		if !ok || appErr.Category != apperr.CategoryValidation {
			t.Fatalf("case %d: expected validation failure, got %v", i, err)
		}
	}
}

func TestUpdateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	owner := uuid.New()
	item := newItem(t, svc, owner)

	_, err := svc.Update(ctx, item.ID, owner, UpdateInput{RiskLevel: strPtr("extreme")})
	appErr, ok := apperr.As(err)
	if !ok || appErr.Category != apperr.CategoryValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
