package generation

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the generation feature around svc.
func NewFeature(svc *Service, readOnly bool) *Feature {
	return &Feature{service: svc, handler: NewHandler(svc, readOnly)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "generation"
}

// IsEnabled reports whether the project has template roots to generate from.
func (f *Feature) IsEnabled() bool {
	return len(f.service.Config().TemplateRoots) > 0
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
