package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/middleware"
)

// Handler exposes the dashboard endpoint behind the authentication
// middleware.
type Handler struct {
	service *Service
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Overview handles GET /dashboard.
func (h *Handler) Overview(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(middleware.UserID(c))
	if err != nil {
		return apperr.InvalidCredential("invalid subject")
	}
	overview, err := h.service.Overview(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(overview)
}
