package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/dto"
	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/service"
	apperrors "github.com/spec-kit/admin-console/pkg/util"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	tokenService *service.TokenService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, tokenService *service.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	session, err := h.authService.Login(c.UserContext(), req.Email, req.Password, clientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(session.Token, session.RefreshToken, session.User))
}

// CreateInvite handles POST /auth/invite (ADMIN only).
func (h *AuthHandler) CreateInvite(c *fiber.Ctx) error {
	payload, ok := auth.PayloadFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if req.Role == "" {
		req.Role = domain.RoleStaff
	}
	if !req.Role.Valid() {
		return apperrors.NewValidationError("invalid role", nil)
	}

	invite, err := h.authService.CreateInvite(c.UserContext(), req.Email, req.Role, payload.UserID, clientIP(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewInviteResponse(invite))
}

// RegisterViaInvite handles POST /auth/register-via-invite.
func (h *AuthHandler) RegisterViaInvite(c *fiber.Ctx) error {
	var req dto.RegisterViaInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.Name == "" || req.Password == "" {
		return apperrors.NewValidationError("token, name, password required", nil)
	}

	session, err := h.authService.RegisterViaInvite(c.UserContext(), req.Token, req.Name, req.Password, clientIP(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewSessionResponse(session.Token, session.RefreshToken, session.User))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refreshToken required", nil)
	}

	session, err := h.tokenService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(session.Token, session.RefreshToken, session.User))
}

// Logout handles POST /auth/logout. Revocation is idempotent and a missing
// token is acknowledged without error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if req.RefreshToken != "" {
		if err := h.tokenService.Revoke(c.UserContext(), req.RefreshToken); err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// clientIP prefers the first forwarded address when present.
func clientIP(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
	}
	return c.IP()
}
