package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/persistence"
	apperrors "github.com/spec-kit/admin-console/pkg/util"
)

// RateLimiter bounds per-client request rates across the whole API with a
// redis fixed window counter. It fails open: if redis is unreachable the
// request proceeds, so a cache outage never takes the API down with it.
func RateLimiter(cfg config.RateLimitConfig, redis *persistence.Redis, logger *zap.Logger) fiber.Handler {
	if cfg.WindowSeconds <= 0 {
		cfg.WindowSeconds = 60
	}
	window := time.Duration(cfg.WindowSeconds) * time.Second

	return func(c *fiber.Ctx) error {
		if !cfg.Enabled {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.IP(), time.Now().Unix()/int64(cfg.WindowSeconds))
		count, err := redis.Client.Incr(c.UserContext(), key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			redis.Client.Expire(c.UserContext(), key, window)
		}

		if count > int64(cfg.RequestsPerWindow) {
			return apperrors.NewDomainError(
				"RATE_LIMITED",
				"Too many requests",
				http.StatusTooManyRequests,
				nil,
			)
		}
		return c.Next()
	}
}
