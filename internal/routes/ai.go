package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comply-core/comply_core/internal/ai"
)

// RegisterAIRoutes wires the standalone model-backed endpoints.
func RegisterAIRoutes(r fiber.Router, h *ai.Handler) {
	group := r.Group("/ai")
	group.Post("/assess-risk", h.AssessRisk)
}
