package user

import (
	"context"
	"testing"
	"time"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/password"
	"github.com/comply-core/comply_core/internal/token"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), password.NewHasher(4),
		token.NewService([]byte("test-secret"), time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, tok, err := svc.Register(ctx, RegisterInput{
		Email: "Alice@Example.com", Password: "Secret123!", FullName: "Alice Doe",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected a token on registration")
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", u.Email)
	}
	if u.PasswordHash == "Secret123!" || u.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}

	logged, tok2, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != u.ID {
		t.Fatalf("expected same account")
	}
	if tok2 == "" {
		t.Fatalf("expected a fresh token on login")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	in := RegisterInput{Email: "alice@example.com", Password: "Secret123!", FullName: "Alice"}
	if _, _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Register(ctx, in)
	appErr, ok := apperr.As(err)
	if !ok || appErr.Category != apperr.CategoryValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []RegisterInput{
		{Email: "not-an-email", Password: "Secret123!", FullName: "Alice"},
		{Email: "alice@example.com", Password: "short", FullName: "Alice"},
		{Email: "alice@example.com", Password: "Secret123!", FullName: "  "},
	}
	for i, in := range cases {
		_, _, err := svc.Register(ctx, in)
		appErr, ok := apperr.As(err)
		if !ok || appErr.Category != apperr.CategoryValidation {
			t.Fatalf("case %d: expected validation failure, got %v", i, err)
		}
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Email: "alice@example.com", Password: "Secret123!", FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, wrongPass := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "WrongPass1!"})
	_, _, unknownEmail := svc.Login(ctx, LoginInput{Email: "bob@example.com", Password: "Secret123!"})

	passErr, ok := apperr.As(wrongPass)
	if !ok {
		t.Fatalf("expected app error for wrong password, got %v", wrongPass)
	}
	emailErr, ok := apperr.As(unknownEmail)
	if !ok {
		t.Fatalf("expected app error for unknown email, got %v", unknownEmail)
	}
	if passErr.Category != emailErr.Category || passErr.Message != emailErr.Message {
		t.Fatalf("wrong-password and unknown-email must be identical: %v vs %v", passErr, emailErr)
	}
	if passErr.Category != apperr.CategoryAuthentication {
		t.Fatalf("expected authentication_failed, got %s", passErr.Category)
	}
}

func TestRefreshMissingAccount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, RegisterInput{
		Email: "alice@example.com", Password: "Secret123!", FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, u.ID); err != nil {
		t.Fatalf("refresh existing account: %v", err)
	}
}
