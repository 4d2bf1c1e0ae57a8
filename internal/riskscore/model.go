package riskscore

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/compliance"
)

// Score is a risk assessment attached to a compliance item, optionally
// backed by a document. OwnerID is stamped from the verified identity.
type Score struct {
	ID               uuid.UUID  `json:"id"`
	OwnerID          uuid.UUID  `json:"owner_id"`
	ComplianceItemID uuid.UUID  `json:"compliance_item_id"`
	DocumentID       *uuid.UUID `json:"document_id"`
	Category         string     `json:"risk_category"`
	Value            int        `json:"risk_score"`
	Level            string     `json:"risk_level"`
	AssessedBy       *string    `json:"assessed_by"`
	Notes            *string    `json:"notes"`
	AIConfidence     *float32   `json:"ai_confidence"`
	AIReasoning      *string    `json:"ai_reasoning"`
	AssessmentDate   time.Time  `json:"assessment_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateInput carries the caller-settable fields of a new score.
type CreateInput struct {
	ComplianceItemID uuid.UUID  `json:"compliance_item_id"`
	DocumentID       *uuid.UUID `json:"document_id"`
	Category         string     `json:"risk_category"`
	Value            int        `json:"risk_score"`
	Level            string     `json:"risk_level"`
	AssessedBy       *string    `json:"assessed_by"`
	Notes            *string    `json:"notes"`
	AIConfidence     *float32   `json:"ai_confidence"`
	AIReasoning      *string    `json:"ai_reasoning"`
}

// Validate checks input shape and enum membership.
func (in *CreateInput) Validate() error {
	if in.ComplianceItemID == uuid.Nil {
		return apperr.Validation("compliance_item_id is required")
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" || len(in.Category) > 100 {
		return apperr.Validation("risk_category must be 1-100 characters")
	}
	if in.Value < 0 || in.Value > 100 {
		return apperr.Validation("risk_score must be 0-100")
	}
	if !compliance.ValidRiskLevel(in.Level) {
		return apperr.Validation("risk_level must be one of low, medium, high, critical")
	}
	return nil
}

// UpdateInput carries a partial update: nil fields are left untouched.
type UpdateInput struct {
	Category     *string  `json:"risk_category"`
	Value        *int     `json:"risk_score"`
	Level        *string  `json:"risk_level"`
	Notes        *string  `json:"notes"`
	AIConfidence *float32 `json:"ai_confidence"`
	AIReasoning  *string  `json:"ai_reasoning"`
}

// Validate checks only the fields that are present.
func (in *UpdateInput) Validate() error {
	if in.Category != nil {
		trimmed := strings.TrimSpace(*in.Category)
		if trimmed == "" || len(trimmed) > 100 {
			return apperr.Validation("risk_category must be 1-100 characters")
		}
		in.Category = &trimmed
	}
	if in.Value != nil && (*in.Value < 0 || *in.Value > 100) {
		return apperr.Validation("risk_score must be 0-100")
	}
	if in.Level != nil && !compliance.ValidRiskLevel(*in.Level) {
		return apperr.Validation("risk_level must be one of low, medium, high, critical")
	}
	return nil
}

// Empty reports whether no field is set.
func (in UpdateInput) Empty() bool {
	return in.Category == nil && in.Value == nil && in.Level == nil &&
		in.Notes == nil && in.AIConfidence == nil && in.AIReasoning == nil
}
