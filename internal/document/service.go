package document

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/ai"
	"github.com/comply-core/comply_core/internal/apperr"
)

// Analyzer produces a structured analysis from document text.
type Analyzer interface {
	AnalyzeDocument(ctx context.Context, text string) (ai.Analysis, error)
}

// Service manages document lifecycle: upload, metadata CRUD and best-effort
// AI analysis.
type Service struct {
	repo     Repository
	store    *Store
	analyzer Analyzer
	logger   *slog.Logger
}

// NewService wires the document service. analyzer may be nil when no AI
// endpoint is configured; Analyze then fails cleanly.
func NewService(repo Repository, store *Store, analyzer Analyzer, logger *slog.Logger) *Service {
	return &Service{repo: repo, store: store, analyzer: analyzer, logger: logger}
}

// Upload stores the file and creates its record, stamping the owner.
func (s *Service) Upload(ctx context.Context, ownerID uuid.UUID, filename string, size int64, mimeType string, src io.Reader) (Document, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return Document{}, apperr.Validation("filename is required")
	}

	path, err := s.store.Save(size, mimeType, src)
	if err != nil {
		return Document{}, err
	}

	doc, err := s.repo.Create(ctx, Document{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Filename: filename,
		FilePath: path,
		FileSize: size,
		MimeType: mimeType,
	})
	if err != nil {
		if rmErr := s.store.Remove(path); rmErr != nil {
			s.logger.Warn("orphaned upload left on disk", slog.String("path", path), slog.Any("error", rmErr))
		}
		return Document{}, err
	}
	return doc, nil
}

// CreateFromText stores pasted text as a plain-text document with the
// extracted text pre-filled, so it is immediately analyzable.
func (s *Service) CreateFromText(ctx context.Context, ownerID uuid.UUID, title, content string) (Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Document{}, apperr.Validation("title is required")
	}
	if content == "" {
		return Document{}, apperr.Validation("content is required")
	}

	filename := safeFilename(title) + ".txt"
	size := int64(len(content))
	path, err := s.store.Save(size, "text/plain", strings.NewReader(content))
	if err != nil {
		return Document{}, err
	}

	doc, err := s.repo.Create(ctx, Document{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Filename:      filename,
		FilePath:      path,
		FileSize:      size,
		MimeType:      "text/plain",
		ExtractedText: &content,
	})
	if err != nil {
		if rmErr := s.store.Remove(path); rmErr != nil {
			s.logger.Warn("orphaned upload left on disk", slog.String("path", path), slog.Any("error", rmErr))
		}
		return Document{}, err
	}
	return doc, nil
}

// safeFilename keeps letters, digits, dashes and underscores; everything
// else becomes an underscore.
func safeFilename(title string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, title)
}

// Get fetches one owned document.
func (s *Service) Get(ctx context.Context, id, ownerID uuid.UUID) (Document, error) {
	return s.repo.Find(ctx, id, ownerID)
}

// List returns the owner's documents.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Document, error) {
	return s.repo.List(ctx, ownerID)
}

// Update merges present fields into an owned document.
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateInput) (Document, error) {
	if in.AIAnalysis != nil && !json.Valid(in.AIAnalysis) {
		return Document{}, apperr.Validation("ai_analysis must be valid JSON")
	}
	return s.repo.Update(ctx, id, ownerID, in)
}

// Delete removes the record, then the file best-effort.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	doc, err := s.repo.Find(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.store.Remove(doc.FilePath); err != nil {
		s.logger.Warn("failed to remove stored file", slog.String("path", doc.FilePath), slog.Any("error", err))
	}
	return nil
}

// Analyze runs the AI helper over the document's extracted text and stores
// the result. It requires extracted text to be present.
func (s *Service) Analyze(ctx context.Context, id, ownerID uuid.UUID) (Document, error) {
	doc, err := s.repo.Find(ctx, id, ownerID)
	if err != nil {
		return Document{}, err
	}
	if s.analyzer == nil {
		return Document{}, apperr.AIUnavailable(nil)
	}
	if doc.ExtractedText == nil || strings.TrimSpace(*doc.ExtractedText) == "" {
		return Document{}, apperr.Validation("document has no extracted text to analyze")
	}

	analysis, err := s.analyzer.AnalyzeDocument(ctx, *doc.ExtractedText)
	if err != nil {
		return Document{}, err
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return Document{}, apperr.Internal("encode analysis", err)
	}
	return s.repo.Update(ctx, id, ownerID, UpdateInput{AIAnalysis: payload})
}
