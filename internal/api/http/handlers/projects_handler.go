package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/dto"
	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/service"
	apperrors "github.com/spec-kit/admin-console/pkg/util"
)

// ProjectsHandler exposes project management endpoints.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs the handler.
func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// Create handles POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Description == "" {
		return apperrors.NewValidationError("name and description required", nil)
	}

	project, err := h.projects.Create(c.UserContext(), req.Name, req.Description, payload.UserID, clientIP(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewProjectResponse(project))
}

// List handles GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 50)
	search := c.Query("search")

	projects, total, err := h.projects.List(c.UserContext(), page, limit, search)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewProjectResponses(projects),
		"meta": dto.ListMeta{Page: page, Limit: limit, Total: total},
	})
}

// Update handles PATCH /projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status != nil &&
		*req.Status != domain.ProjectStatusActive && *req.Status != domain.ProjectStatusArchived {
		return apperrors.NewValidationError("invalid status", nil)
	}

	project, err := h.projects.Update(c.UserContext(), c.Params("id"), service.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}, payload.UserID, clientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProjectResponse(project))
}

// Delete handles DELETE /projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	project, err := h.projects.SoftDelete(c.UserContext(), c.Params("id"), payload.UserID, clientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProjectResponse(project))
}
