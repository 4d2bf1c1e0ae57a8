package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comply-core/comply_core/internal/dashboard"
)

// RegisterDashboardRoutes wires the dashboard endpoint.
func RegisterDashboardRoutes(r fiber.Router, h *dashboard.Handler) {
	r.Get("/dashboard", h.Overview)
}
