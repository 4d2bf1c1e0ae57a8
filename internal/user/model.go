package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
)

// User is a registered account. PasswordHash is write-once at creation and
// never serialized in responses.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

const minPasswordLength = 8

// Validate normalizes the email and checks input shape.
func (in *RegisterInput) Validate() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperr.Validation("invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return apperr.Validation("password must be at least 8 characters")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return apperr.Validation("full name is required")
	}
	return nil
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate normalizes the email and checks both fields are present.
func (in *LoginInput) Validate() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return apperr.Validation("email and password are required")
	}
	return nil
}

// Response is the client-facing account shape.
type Response struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewResponse strips server-only fields from a User.
func NewResponse(u User) Response {
	return Response{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}
