package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/dto"
	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/service"
	apperrors "github.com/spec-kit/admin-console/pkg/util"
)

// UsersHandler exposes admin-only user management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 50)
	search := c.Query("search")

	users, total, err := h.users.List(c.UserContext(), page, limit, search)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewUserResponses(users),
		"meta": dto.ListMeta{Page: page, Limit: limit, Total: total},
	})
}

// UpdateRole handles PATCH /users/:id/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.Role.Valid() {
		return apperrors.NewValidationError("invalid role", nil)
	}

	user, err := h.users.UpdateRole(c.UserContext(), c.Params("id"), req.Role, payload.UserID, clientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateStatus handles PATCH /users/:id/status.
func (h *UsersHandler) UpdateStatus(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.Status.Valid() {
		return apperrors.NewValidationError("invalid status", nil)
	}

	user, err := h.users.UpdateStatus(c.UserContext(), c.Params("id"), req.Status, payload.UserID, clientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}
