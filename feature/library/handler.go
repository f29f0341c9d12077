package library

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"folder-ingest/core/logger"
)

// Handler handles HTTP requests for the asset library.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library")
	group.Get("/folders", h.HandleFolders)
	group.Get("/folders/:name", h.HandleFolder)
	group.Get("/folders/:name/assets/:id", h.HandleAsset)
}

// HandleFolders lists every registered folder with its ingestion status.
func (h *Handler) HandleFolders(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"folders": h.service.Folders(),
	})
}

// HandleFolder returns one folder's keys and quarantined paths.
func (h *Handler) HandleFolder(c *fiber.Ctx) error {
	detail, err := h.service.Folder(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(detail)
}

// HandleAsset returns the realized content for one identifier.
func (h *Handler) HandleAsset(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name := c.Params("name")
	id := c.Params("id")

	content, err := h.service.Asset(name, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrFolderNotFound), errors.Is(err, ErrAssetNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrNotRealized):
			l.Warn("Asset requested before realization",
				zap.String("folder", name),
				zap.String("id", id))
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"id":      id,
		"content": content,
	})
}
