package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every verification failure: malformed
// encoding, signature mismatch, or expiry. Callers get no distinguishing
// detail.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity encoded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Service issues and verifies signed session tokens. The secret is shared by
// reference between both paths so they can never diverge.
type Service struct {
	secret   []byte
	lifetime time.Duration
}

// NewService builds a token service around a symmetric secret. Lifetime
// bounds every issued token (24h in the standard configuration).
func NewService(secret []byte, lifetime time.Duration) *Service {
	return &Service{secret: secret, lifetime: lifetime}
}

// Lifetime returns the configured token lifetime.
func (s *Service) Lifetime() time.Duration { return s.lifetime }

// Issue creates a signed token for the given subject and email. The claim
// set is {sub, email, iat: now, exp: now + lifetime}.
func (s *Service) Issue(subject, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes and checks a token. The signature check gates any use of
// claim contents; expiry is enforced during validation. Any failure returns
// ErrInvalidToken.
func (s *Service) Verify(tokenString string) (Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return *claims, nil
}
