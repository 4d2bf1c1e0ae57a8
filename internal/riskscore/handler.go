package riskscore

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/middleware"
)

// Handler exposes risk score endpoints behind the authentication middleware.
type Handler struct {
	service *Service
}

// NewHandler constructs a risk score HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func identity(c *fiber.Ctx) (uuid.UUID, error) {
	ownerID, err := uuid.Parse(middleware.UserID(c))
	if err != nil {
		return uuid.Nil, apperr.InvalidCredential("invalid subject")
	}
	return ownerID, nil
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid id")
	}
	return id, nil
}

// Create handles POST /risk-scores.
func (h *Handler) Create(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	score, err := h.service.Create(c.UserContext(), ownerID, in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(score)
}

// List handles GET /risk-scores.
func (h *Handler) List(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	scores, err := h.service.List(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(scores)
}

// ListByComplianceItem handles GET /risk-scores/compliance/:id.
func (h *Handler) ListByComplianceItem(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c)
	if err != nil {
		return err
	}
	scores, err := h.service.ListByComplianceItem(c.UserContext(), itemID, ownerID)
	if err != nil {
		return err
	}
	return c.JSON(scores)
}

// Get handles GET /risk-scores/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	score, err := h.service.Get(c.UserContext(), id, ownerID)
	if err != nil {
		return err
	}
	return c.JSON(score)
}

// Update handles PATCH /risk-scores/:id.
func (h *Handler) Update(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	score, err := h.service.Update(c.UserContext(), id, ownerID, in)
	if err != nil {
		return err
	}
	return c.JSON(score)
}

// Delete handles DELETE /risk-scores/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id, ownerID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
