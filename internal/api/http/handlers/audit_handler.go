package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/dto"
	"github.com/spec-kit/admin-console/internal/service"
)

// AuditHandler exposes the admin audit trail view.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /audit-logs.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit := parseIntQuery(c, "limit", 100)
	offset := 0
	if val := parseIntQuery(c, "offset", 0); val > 0 {
		offset = val
	}

	entries, total, err := h.audit.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewAuditLogResponses(entries),
		"meta": fiber.Map{"total": total, "limit": limit, "offset": offset},
	})
}
