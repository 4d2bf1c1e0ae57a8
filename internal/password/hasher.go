package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/comply-core/comply_core/internal/apperr"
)

// Hasher hashes and verifies passwords using bcrypt at a fixed cost. The
// cost is set once at construction and never changes at runtime.
type Hasher struct {
	cost int
}

// NewHasher builds a Hasher. Costs outside bcrypt's valid range fall back to
// the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted bcrypt hash. The salt is random per call, so the
// same password never hashes to the same value twice.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", apperr.Internal("password hashing failed", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. A mismatch returns
// (false, nil); a structurally invalid hash returns an error. bcrypt's
// comparison is constant-time.
func (h *Hasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperr.Internal("password verification failed", err)
}
