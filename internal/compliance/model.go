package compliance

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
)

// Risk levels and statuses are stored as text; these are the only accepted
// values.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusExpired    = "expired"
)

// ValidRiskLevel reports whether level is one of the accepted risk levels.
func ValidRiskLevel(level string) bool {
	switch level {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

func validStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// Item is a tracked compliance obligation. OwnerID is stamped from the
// verified identity at creation and never changes.
type Item struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	RiskLevel   string     `json:"risk_level"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateInput carries the caller-settable fields of a new item. Owner is
// deliberately absent.
type CreateInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	RiskLevel   string     `json:"risk_level"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// Validate checks input shape and enum membership.
func (in *CreateInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if len(in.Title) < 3 {
		return apperr.Validation("title must be at least 3 characters")
	}
	if !ValidRiskLevel(in.RiskLevel) {
		return apperr.Validation("risk_level must be one of low, medium, high, critical")
	}
	if !validStatus(in.Status) {
		return apperr.Validation("status must be one of pending, in_progress, completed, expired")
	}
	return nil
}

// UpdateInput carries a partial update: nil fields are left untouched.
type UpdateInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	RiskLevel   *string    `json:"risk_level"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// Validate checks only the fields that are present.
func (in *UpdateInput) Validate() error {
	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		if len(trimmed) < 3 {
			return apperr.Validation("title must be at least 3 characters")
		}
		in.Title = &trimmed
	}
	if in.RiskLevel != nil && !ValidRiskLevel(*in.RiskLevel) {
		return apperr.Validation("risk_level must be one of low, medium, high, critical")
	}
	if in.Status != nil && !validStatus(*in.Status) {
		return apperr.Validation("status must be one of pending, in_progress, completed, expired")
	}
	return nil
}

// Empty reports whether no field is set, the no-op success path.
func (in UpdateInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.RiskLevel == nil &&
		in.Status == nil && in.DueDate == nil
}
