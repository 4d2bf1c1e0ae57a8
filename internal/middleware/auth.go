package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/token"
)

// Locals keys set by Authenticate for downstream handlers.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalClaims = "claims"
)

const (
	// AuthCookieName is the cookie carrying a session token for browser
	// clients.
	AuthCookieName = "auth_token"

	bearerPrefix = "Bearer "
)

// Authenticate extracts and verifies a session token, binding the verified
// identity to the request before the handler runs.
//
// Extraction order: the Authorization header is tried first and must match
// "Bearer <token>" exactly (case-sensitive scheme, single space). A missing
// or non-Bearer header falls through to the auth_token cookie. If neither
// yields a token the request fails with missing_credential; an unverifiable
// token fails with invalid_credential. The raw token is never logged.
func Authenticate(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		candidate := extractToken(c)
		if candidate == "" {
			return apperr.MissingCredential("missing authentication token")
		}

		claims, err := tokens.Verify(candidate)
		if err != nil {
			return apperr.InvalidCredential("invalid or expired token")
		}

		c.Locals(LocalUserID, claims.Subject)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	authz := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authz, bearerPrefix) {
		if t := authz[len(bearerPrefix):]; t != "" && !strings.HasPrefix(t, " ") {
			return t
		}
	}
	return c.Cookies(AuthCookieName)
}

// UserID returns the verified subject bound by Authenticate, or "" when the
// request is unauthenticated.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
