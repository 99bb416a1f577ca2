package dto

import (
	"time"

	"github.com/spec-kit/admin-console/internal/domain"
)

// UserResponse is the public projection of a user. The password hash never
// crosses the wire.
type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      domain.Role       `json:"role"`
	Status    domain.UserStatus `json:"status"`
	InvitedAt *time.Time        `json:"invitedAt,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// UpdateUserRoleRequest payload.
type UpdateUserRoleRequest struct {
	Role domain.Role `json:"role"`
}

// UpdateUserStatusRequest payload.
type UpdateUserStatusRequest struct {
	Status domain.UserStatus `json:"status"`
}

// ListMeta carries pagination info alongside list payloads.
type ListMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// NewUserResponse maps a user to its wire shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		InvitedAt: user.InvitedAt,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserResponses maps a user slice.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
