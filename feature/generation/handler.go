package generation

import (
	"errors"

	"model-generator/core/expr"
	"model-generator/core/generate"
	"model-generator/core/logger"
	"model-generator/core/manifest"
	"model-generator/core/reconcile"
	"model-generator/core/resolver"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for generation runs.
type Handler struct {
	service  *Service
	readOnly bool
}

// NewHandler creates a new HTTP handler. A read-only handler rejects apply and checksum.
func NewHandler(service *Service, readOnly bool) *Handler {
	return &Handler{service: service, readOnly: readOnly}
}

// RegisterRoutes registers the generation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/generation")
	group.Get("/plan", h.HandlePlan)
	group.Post("/apply", h.HandleApply)
	group.Get("/manifest", h.HandleManifest)
	group.Post("/checksum", h.HandleChecksum)
}

// HandlePlan computes the reconcile plans of the configured project.
// @Summary Plan Generation
// @Description Generates all artifacts and compares them with the target directory without changing it.
// @Tags generation
// @Produce json
// @Success 200 {object} Run "Plans per partition"
// @Failure 422 {object} map[string]string "Template or expression error"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /generation/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run, err := h.service.Plan(c.Context())
	if err != nil {
		l.Error("Plan failed", zap.Error(err))
		return h.fail(c, err, nil)
	}
	return c.JSON(run)
}

// HandleApply runs generation and reconciles the target directory.
// @Summary Apply Generation
// @Description Generates all artifacts and reconciles them into the target directory. Hand-edited files abort the run with 409 when checksum validation is on.
// @Tags generation
// @Produce json
// @Success 200 {object} Run "Reconciled partitions"
// @Failure 403 {object} map[string]string "Server is read-only"
// @Failure 409 {object} map[string]interface{} "Generated files were edited"
// @Failure 422 {object} map[string]string "Template or expression error"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /generation/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	if h.readOnly {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "server is read-only"})
	}
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering generation run")

	run, err := h.service.Apply(c.Context())
	if err != nil {
		l.Error("Generation run failed", zap.Error(err))
		return h.fail(c, err, run)
	}
	return c.JSON(run)
}

// HandleManifest returns the manifest entries of a partition.
// @Summary Read Manifest
// @Description Returns the saved manifest of the main partition or of the given actor.
// @Tags generation
// @Produce json
// @Param actor query string false "Actor partition"
// @Success 200 {object} map[string]interface{} "Manifest entries"
// @Failure 400 {object} map[string]string "Invalid actor"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /generation/manifest [get]
func (h *Handler) HandleManifest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	actor := c.Query("actor")

	m, err := h.service.Manifest(actor)
	if err != nil {
		l.Error("Manifest read failed", zap.String("actor", actor), zap.Error(err))
		if errors.Is(err, manifest.ErrFormat) || errors.Is(err, generate.ErrEvaluation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, errInvalidActor) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if m == nil {
		m = manifest.Manifest{}
	}
	return c.JSON(fiber.Map{
		"name":    manifest.NameFor(actor),
		"entries": m,
	})
}

// HandleChecksum recalculates every manifest from the files on disk.
// @Summary Recalculate Checksums
// @Description Rewrites the manifests from the current content of the files they list, accepting hand edits.
// @Tags generation
// @Produce json
// @Success 200 {object} map[string]interface{} "Manifests per partition"
// @Failure 403 {object} map[string]string "Server is read-only"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /generation/checksum [post]
func (h *Handler) HandleChecksum(c *fiber.Ctx) error {
	if h.readOnly {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "server is read-only"})
	}
	l := logger.WithRayID(h.service.logger, c)

	manifests, err := h.service.Checksum(c.Context())
	if err != nil {
		l.Error("Checksum recalculation failed", zap.Error(err))
		return h.fail(c, err, nil)
	}

	out := make(map[string]manifest.Manifest, len(manifests))
	for actor, m := range manifests {
		out[manifest.NameFor(actor)] = m
	}
	return c.JSON(fiber.Map{"manifests": out})
}

// fail maps run errors to status codes.
func (h *Handler) fail(c *fiber.Ctx, err error, run *Run) error {
	var conflict *reconcile.ConflictError
	switch {
	case errors.As(err, &conflict):
		body := fiber.Map{"error": err.Error(), "paths": conflict.Paths}
		if run != nil {
			body["run"] = run
		}
		return c.Status(fiber.StatusConflict).JSON(body)
	case errors.Is(err, generate.ErrEvaluation),
		errors.Is(err, expr.ErrExpression),
		errors.Is(err, resolver.ErrNotFound),
		errors.Is(err, manifest.ErrFormat),
		errors.Is(err, reconcile.ErrInvalidArtifact):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
