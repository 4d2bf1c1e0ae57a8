package compliance

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/middleware"
)

// Handler exposes compliance item endpoints. All routes sit behind the
// authentication middleware.
type Handler struct {
	service *Service
}

// NewHandler constructs a compliance HTTP handler.
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

// Create handles POST /compliance.
func (h *Handler) Create(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	item, err := h.service.Create(c.UserContext(), ownerID, in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(item)
}

// List handles GET /compliance.
func (h *Handler) List(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Get handles GET /compliance/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.UserContext(), id, ownerID)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Update handles PATCH /compliance/:id.
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
	item, err := h.service.Update(c.UserContext(), id, ownerID, in)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Delete handles DELETE /compliance/:id.
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
