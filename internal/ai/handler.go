package ai

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/comply-core/comply_core/internal/apperr"
)

// Handler exposes standalone model-backed endpoints. client may be nil when
// no AI endpoint is configured; requests then fail with ai_unavailable.
type Handler struct {
	client *Client
}

// NewHandler constructs the AI HTTP handler.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

type assessRiskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AssessRisk handles POST /ai/assess-risk. The result is advisory only;
// nothing is persisted.
func (h *Handler) AssessRisk(c *fiber.Ctx) error {
	var in assessRiskInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return apperr.Validation("title is required")
	}
	if h.client == nil {
		return apperr.AIUnavailable(nil)
	}
	assessment, err := h.client.AssessRisk(c.UserContext(), in.Title, strings.TrimSpace(in.Description))
	if err != nil {
		return err
	}
	return c.JSON(assessment)
}
