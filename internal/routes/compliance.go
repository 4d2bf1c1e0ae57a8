package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comply-core/comply_core/internal/compliance"
)

// RegisterComplianceRoutes wires compliance item endpoints.
func RegisterComplianceRoutes(r fiber.Router, h *compliance.Handler) {
	group := r.Group("/compliance")
	group.Post("", h.Create)
	group.Get("", h.List)
	group.Get("/:id", h.Get)
	group.Patch("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
