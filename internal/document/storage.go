package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
)

var allowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/msword": {},
	"text/plain":         {},
	"text/csv":           {},
	"application/json":   {},
}

// Store writes uploaded files under a UUID-based name inside a single
// upload directory. The original filename never touches the filesystem.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates the upload directory if needed.
func NewStore(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// Save validates size and MIME type, then copies src to disk. It returns
// the stored path.
func (s *Store) Save(size int64, mimeType string, src io.Reader) (string, error) {
	if size <= 0 {
		return "", apperr.Validation("file is empty")
	}
	if size > s.maxSize {
		return "", apperr.Validation(fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", size, s.maxSize))
	}
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return "", apperr.Validation("unsupported file type: " + mimeType)
	}

	path := filepath.Join(s.dir, uuid.NewString())
	dst, err := os.Create(path)
	if err != nil {
		return "", apperr.Internal("store file", err)
	}
	defer dst.Close()

	// The record claims size bytes; the stream must deliver exactly that.
	// Reading one extra byte detects a stream longer than declared.
	written, err := io.Copy(dst, io.LimitReader(src, size+1))
	if err != nil {
		os.Remove(path)
		return "", apperr.Internal("store file", err)
	}
	if written != size {
		os.Remove(path)
		return "", apperr.Validation("file content does not match declared size")
	}
	return path, nil
}

// Remove deletes a stored file. A missing file is not an error: the record
// is authoritative, the file is best-effort.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
