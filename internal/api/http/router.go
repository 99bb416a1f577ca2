package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/http/handlers"
	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Projects       *handlers.ProjectsHandler
	Stats          *handlers.StatsHandler
	Audit          *handlers.AuditHandler
	AuthMiddleware *auth.Middleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes. Protected routes run the chain
// authenticate -> ensure-active -> (optionally) require-role before the
// handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.RateLimiter != nil {
		app.Use(cfg.RateLimiter)
	}

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authenticated := []fiber.Handler{cfg.AuthMiddleware.Authenticate, cfg.AuthMiddleware.EnsureActiveUser}
	adminOnly := append(append([]fiber.Handler{}, authenticated...), auth.RequireRole(domain.RoleAdmin))

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/invite", chain(adminOnly, cfg.Auth.CreateInvite)...)
	authGroup.Post("/register-via-invite", cfg.Auth.RegisterViaInvite)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	users := app.Group("/users")
	users.Get("/", chain(adminOnly, cfg.Users.List)...)
	users.Patch("/:id/role", chain(adminOnly, cfg.Users.UpdateRole)...)
	users.Patch("/:id/status", chain(adminOnly, cfg.Users.UpdateStatus)...)

	projects := app.Group("/projects")
	projects.Post("/", chain(authenticated, cfg.Projects.Create)...)
	projects.Get("/", chain(authenticated, cfg.Projects.List)...)
	projects.Patch("/:id", chain(adminOnly, cfg.Projects.Update)...)
	projects.Delete("/:id", chain(adminOnly, cfg.Projects.Delete)...)

	app.Get("/stats/dashboard", chain(authenticated, cfg.Stats.Dashboard)...)
	app.Get("/audit-logs", chain(adminOnly, cfg.Audit.List)...)
}

func chain(middlewares []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(middlewares)+1)
	out = append(out, middlewares...)
	return append(out, handler)
}
