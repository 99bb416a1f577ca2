package dto

import (
	"time"

	"github.com/spec-kit/admin-console/internal/domain"
)

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// InviteRequest payload for creating an invite. Role defaults to STAFF.
type InviteRequest struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// RegisterViaInviteRequest payload for redeeming an invite.
type RegisterViaInviteRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RefreshRequest payload for rotating a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest payload for revoking a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SessionResponse is the standard response for login, registration and
// refresh: a signed access token, the opaque refresh token, and the user's
// public projection.
type SessionResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// InviteResponse is the public view of a created invite. The token is the
// invite credential itself; distribution is up to the caller.
type InviteResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// NewSessionResponse maps a domain session to its wire shape.
func NewSessionResponse(token, refreshToken string, user *domain.User) SessionResponse {
	return SessionResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         NewUserResponse(user),
	}
}

// NewInviteResponse maps an invite to its wire shape.
func NewInviteResponse(invite *domain.Invite) InviteResponse {
	return InviteResponse{
		ID:        invite.ID,
		Email:     invite.Email,
		Role:      invite.Role,
		Token:     invite.Token,
		ExpiresAt: invite.ExpiresAt,
	}
}
