package library

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"folder-ingest/core/ingest"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Library feature.
func NewFeature(registry *ingest.Registry[string], store ContentStore, mu *sync.RWMutex, logger *zap.Logger) *Feature {
	svc := NewService(registry, store, mu, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "library"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
