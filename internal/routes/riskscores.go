package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comply-core/comply_core/internal/riskscore"
)

// RegisterRiskScoreRoutes wires risk score endpoints.
func RegisterRiskScoreRoutes(r fiber.Router, h *riskscore.Handler) {
	group := r.Group("/risk-scores")
	group.Post("", h.Create)
	group.Get("", h.List)
	group.Get("/compliance/:id", h.ListByComplianceItem)
	group.Get("/:id", h.Get)
	group.Patch("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
