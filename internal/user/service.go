package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/password"
	"github.com/comply-core/comply_core/internal/token"
)

// Service handles registration, login and token refresh. It is the only
// code path that sees plaintext passwords, and only until hashing completes.
type Service struct {
	repo   Repository
	hasher *password.Hasher
	tokens *token.Service
}

// NewService wires the credential-issuing service.
func NewService(repo Repository, hasher *password.Hasher, tokens *token.Service) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates an account and issues its first session token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	if err := in.Validate(); err != nil {
		return User{}, "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, "", err
	}

	created, err := s.repo.Create(ctx, User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, "", apperr.Validation("email already registered")
		}
		return User{}, "", err
	}

	tok, err := s.tokens.Issue(created.ID.String(), created.Email)
	if err != nil {
		return User{}, "", apperr.Internal("issue token", err)
	}
	return created, tok, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password produce the same failure.
func (s *Service) Login(ctx context.Context, in LoginInput) (User, string, error) {
	if err := in.Validate(); err != nil {
		return User{}, "", err
	}

	u, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", apperr.Authentication()
		}
		return User{}, "", err
	}

	ok, err := s.hasher.Verify(in.Password, u.PasswordHash)
	if err != nil {
		return User{}, "", err
	}
	if !ok {
		return User{}, "", apperr.Authentication()
	}

	tok, err := s.tokens.Issue(u.ID.String(), u.Email)
	if err != nil {
		return User{}, "", apperr.Internal("issue token", err)
	}
	return u, tok, nil
}

// Refresh re-issues a token for a verified identity after confirming the
// account still exists.
func (s *Service) Refresh(ctx context.Context, userID uuid.UUID) (User, string, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", apperr.InvalidCredential("account no longer exists")
		}
		return User{}, "", err
	}

	tok, err := s.tokens.Issue(u.ID.String(), u.Email)
	if err != nil {
		return User{}, "", apperr.Internal("issue token", err)
	}
	return u, tok, nil
}

// Get fetches an account for the profile endpoint.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.NotFound("user")
		}
		return User{}, err
	}
	return u, nil
}
