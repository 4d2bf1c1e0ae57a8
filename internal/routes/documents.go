package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comply-core/comply_core/internal/document"
)

// RegisterDocumentRoutes wires document endpoints.
func RegisterDocumentRoutes(r fiber.Router, h *document.Handler) {
	group := r.Group("/documents")
	group.Post("", h.Upload)
	group.Post("/text", h.CreateFromText)
	group.Get("", h.List)
	group.Get("/:id", h.Get)
	group.Patch("/:id", h.Update)
	group.Delete("/:id", h.Delete)
	group.Post("/:id/analyze", h.Analyze)
}
