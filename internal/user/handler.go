package user

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/middleware"
)

// authCookieMaxAge is the cookie lifetime (7 days). The token inside expires
// on its own schedule; an expired token in a live cookie simply fails
// verification.
const authCookieMaxAge = 604800

// Handler exposes the credential-issuing endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type authResponse struct {
	User        Response `json:"user"`
	AccessToken string   `json:"access_token,omitempty"`
}

func setAuthCookie(c *fiber.Ctx, token string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Handler) respond(c *fiber.Ctx, status int, u User, token string) error {
	setAuthCookie(c, token, authCookieMaxAge)
	resp := authResponse{User: NewResponse(u)}
	if c.QueryBool("return_token") {
		resp.AccessToken = token
	}
	return c.Status(status).JSON(resp)
}

// Register handles account creation.
func (h *Handler) Register(c *fiber.Ctx) error {
	var in RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	u, token, err := h.service.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusCreated, u, token)
}

// Login handles credential verification.
func (h *Handler) Login(c *fiber.Ctx) error {
	var in LoginInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	u, token, err := h.service.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusOK, u, token)
}

// Refresh re-issues a token for the authenticated user.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	u, token, err := h.service.Refresh(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return h.respond(c, http.StatusOK, u, token)
}

// Logout clears the auth cookie. Issued tokens stay valid until expiry;
// there is no server-side revocation list.
func (h *Handler) Logout(c *fiber.Ctx) error {
	setAuthCookie(c, "", -1)
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	u, err := h.service.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(NewResponse(u))
}

func requireUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(middleware.UserID(c))
	if err != nil {
		return uuid.Nil, apperr.InvalidCredential("invalid subject")
	}
	return id, nil
}
