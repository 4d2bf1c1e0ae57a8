package document

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/comply-core/comply_core/internal/apperr"
	"github.com/comply-core/comply_core/internal/middleware"
)

// Handler exposes document endpoints behind the authentication middleware.
type Handler struct {
	service *Service
}

// NewHandler constructs a document HTTP handler.
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

// Upload handles POST /documents with a multipart "file" part. Optional
// extracted_text form value seeds the analysis input.
func (h *Handler) Upload(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperr.Validation("file part is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperr.Validation("unreadable file part")
	}
	defer src.Close()

	doc, err := h.service.Upload(c.UserContext(), ownerID, fileHeader.Filename,
		fileHeader.Size, fileHeader.Header.Get(fiber.HeaderContentType), src)
	if err != nil {
		return err
	}

	if text := c.FormValue("extracted_text"); text != "" {
		doc, err = h.service.Update(c.UserContext(), doc.ID, ownerID, UpdateInput{ExtractedText: &text})
		if err != nil {
			return err
		}
	}
	return c.Status(http.StatusCreated).JSON(doc)
}

type createTextInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateFromText handles POST /documents/text.
func (h *Handler) CreateFromText(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	var in createTextInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	doc, err := h.service.CreateFromText(c.UserContext(), ownerID, in.Title, in.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(doc)
}

// List handles GET /documents.
func (h *Handler) List(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	docs, err := h.service.List(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

// Get handles GET /documents/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	doc, err := h.service.Get(c.UserContext(), id, ownerID)
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// Update handles PATCH /documents/:id.
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
	doc, err := h.service.Update(c.UserContext(), id, ownerID, in)
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// Delete handles DELETE /documents/:id.
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

// Analyze handles POST /documents/:id/analyze.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	ownerID, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	doc, err := h.service.Analyze(c.UserContext(), id, ownerID)
	if err != nil {
		return err
	}
	return c.JSON(doc)
}
