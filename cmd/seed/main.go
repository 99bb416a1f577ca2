package main

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/observability"
	"github.com/spec-kit/admin-console/internal/persistence"
	"github.com/spec-kit/admin-console/internal/repository"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!"
)

// Seeds the initial ADMIN account so the console is reachable before any
// invite exists. Idempotent: an existing admin user is left untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	users := repository.NewUserRepository(pg.PoolHandle())

	if _, err := users.GetByEmail(ctx, adminEmail); err == nil {
		logger.Info("admin user already seeded", zap.String("email", adminEmail))
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		logger.Fatal("failed to check admin user", zap.Error(err))
	}

	hash, err := auth.HashPassword(adminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash admin password", zap.Error(err))
	}

	admin := &domain.User{
		Name:         "Admin User",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.UserStatusActive,
	}
	if err := users.Create(ctx, admin); err != nil {
		logger.Fatal("failed to seed admin user", zap.Error(err))
	}

	logger.Info("seeded admin user", zap.String("id", admin.ID), zap.String("email", adminEmail))
}
