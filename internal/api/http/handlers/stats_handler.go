package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/service"
)

// StatsHandler exposes dashboard aggregation endpoints.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Dashboard handles GET /stats/dashboard.
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.stats.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
