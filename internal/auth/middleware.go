package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/repository"
	apperrors "github.com/spec-kit/admin-console/pkg/util"
)

const payloadKey = "auth_payload"

// Payload is the verified token content attached to the request context.
type Payload struct {
	UserID string
	Role   domain.Role
}

// Middleware enforces the per-request chain: token verification, active-user
// re-check, then role comparison. Any failure short-circuits the chain.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Authenticate verifies the bearer token and attaches its payload. Missing
// header, malformed scheme and failed verification are indistinguishable to
// the caller.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	c.Locals(payloadKey, &Payload{UserID: claims.UserID, Role: claims.Role})
	return c.Next()
}

// EnsureActiveUser re-fetches the user from the store. Status can change
// after token issuance, and access tokens are not individually revocable,
// so this re-check is the only thing blocking a disabled account before its
// token naturally expires.
func (m *Middleware) EnsureActiveUser(c *fiber.Ctx) error {
	payload, ok := PayloadFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	user, err := m.users.GetByID(c.UserContext(), payload.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		return apperrors.MapError(err)
	}
	if user.Status != domain.UserStatusActive {
		return apperrors.NewInactiveUser()
	}
	return c.Next()
}

// RequireRole gates the route on an exact role match.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, ok := PayloadFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		if payload.Role != role {
			return apperrors.NewForbidden("Forbidden")
		}
		return c.Next()
	}
}

// PayloadFromContext retrieves the authenticated token payload.
func PayloadFromContext(c *fiber.Ctx) (*Payload, bool) {
	val := c.Locals(payloadKey)
	if val == nil {
		return nil, false
	}
	payload, ok := val.(*Payload)
	return payload, ok
}
