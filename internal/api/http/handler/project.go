package handler

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ryancham715/sav4us/internal/api/http/middleware"
	"github.com/ryancham715/sav4us/internal/logger"
	"github.com/ryancham715/sav4us/internal/model"
)

// ProjectService defines project record operations.
type ProjectService interface {
	CreateProject(ctx context.Context, callerID uuid.UUID, params model.CreateProjectParams) (model.Project, error)
	ListProjects(ctx context.Context, callerID uuid.UUID) ([]model.Project, error)
	WatchProjects(ctx context.Context, callerID uuid.UUID) ([]model.Project, <-chan []model.Project, func(), error)
}

// Project handles HTTP endpoints for project records.
type Project struct {
	service ProjectService
	logger  *logger.Logger
}

// NewProject creates a new Project handler.
func NewProject(service ProjectService, logger *logger.Logger) *Project {
	return &Project{
		service: service,
		logger:  logger,
	}
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	TargetMajor float64 `json:"target"`
	WeightA     int     `json:"weightA"`
	WeightB     int     `json:"weightB"`
}

// Create persists a new project with the caller as member A.
func (h *Project) Create(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	var req createProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	project, err := h.service.CreateProject(c.Context(), callerID, model.CreateProjectParams{
		Name:        req.Name,
		TargetMajor: req.TargetMajor,
		WeightA:     req.WeightA,
		WeightB:     req.WeightB,
	})
	if err != nil {
		h.logger.Error("Project handler: create failed",
			"caller_id", callerID,
			"error", err.Error())
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(project)
}

// List returns the caller's visible projects.
func (h *Project) List(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	projects, err := h.service.ListProjects(c.Context(), callerID)
	if err != nil {
		return respondError(c, err)
	}

	if projects == nil {
		projects = []model.Project{}
	}
	return c.JSON(projects)
}

// Watch streams the caller's visible project set.
func (h *Project) Watch(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	projects, updates, cancel, err := h.service.WatchProjects(c.Context(), callerID)
	if err != nil {
		return respondError(c, err)
	}

	if projects == nil {
		projects = []model.Project{}
	}
	return streamSnapshots(c, projects, updates, cancel)
}
