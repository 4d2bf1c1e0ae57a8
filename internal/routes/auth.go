package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comply-core/comply_core/internal/user"
)

// RegisterAuthRoutes wires the credential-issuing endpoints. Register and
// login are public; refresh, logout and me require a verified identity.
func RegisterAuthRoutes(r fiber.Router, h *user.Handler, authmw fiber.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Post("/refresh", authmw, h.Refresh)
	group.Post("/logout", h.Logout)
	group.Get("/me", authmw, h.Me)
}
