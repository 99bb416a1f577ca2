package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/repository"
	apperrors "github.com/spec-kit/admin-console/pkg/util"
)

// UserService covers the admin-facing account operations: listing and
// role/status updates.
type UserService struct {
	users repository.UserRepository
	audit AuditRecorder
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, audit AuditRecorder) *UserService {
	return &UserService{users: users, audit: audit}
}

// List returns a page of users, optionally filtered by a name/email search.
func (s *UserService) List(ctx context.Context, page, limit int, search string) ([]domain.User, int, error) {
	page, limit = clampPagination(page, limit)
	return s.users.List(ctx, repository.UserListFilters{
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
}

// UpdateRole changes a user's role.
func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.Role, updatedBy, ipAddress string) (*domain.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, events.AuditRecordedPayload{
		Action:    domain.AuditUserRoleChanged,
		UserID:    &updatedBy,
		TargetID:  &id,
		Details:   fmt.Sprintf("Role changed from %s to %s", current.Role, role),
		IPAddress: ipAddress,
	})
	return updated, nil
}

// UpdateStatus changes a user's status. Deactivation does not revoke live
// sessions; the middleware's active-user re-check blocks them on the next
// request.
func (s *UserService) UpdateStatus(ctx context.Context, id string, status domain.UserStatus, updatedBy, ipAddress string) (*domain.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}

	updated, err := s.users.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, events.AuditRecordedPayload{
		Action:    domain.AuditUserStatusChanged,
		UserID:    &updatedBy,
		TargetID:  &id,
		Details:   fmt.Sprintf("Status changed from %s to %s", current.Status, status),
		IPAddress: ipAddress,
	})
	return updated, nil
}

func clampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
