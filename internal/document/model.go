package document

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded file plus its extracted text and AI analysis.
// OwnerID is stamped at upload time and never changes; FilePath is
// server-side only.
type Document struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	Filename      string          `json:"filename"`
	FilePath      string          `json:"-"`
	FileSize      int64           `json:"file_size"`
	MimeType      string          `json:"mime_type"`
	ExtractedText *string         `json:"extracted_text"`
	AIAnalysis    json.RawMessage `json:"ai_analysis"`
	UploadedAt    time.Time       `json:"uploaded_at"`
}

// UpdateInput carries the two patchable columns. Absent fields are left
// untouched.
type UpdateInput struct {
	ExtractedText *string         `json:"extracted_text"`
	AIAnalysis    json.RawMessage `json:"ai_analysis"`
}

// Empty reports whether no field is set.
func (in UpdateInput) Empty() bool {
	return in.ExtractedText == nil && in.AIAnalysis == nil
}
