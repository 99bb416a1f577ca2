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

// ProjectUpdate carries the optional fields of a project update; nil fields
// are left unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
}

// ProjectService manages project records.
type ProjectService struct {
	projects repository.ProjectRepository
	audit    AuditRecorder
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, audit AuditRecorder) *ProjectService {
	return &ProjectService{projects: projects, audit: audit}
}

// Create records a new project owned by the caller.
func (s *ProjectService) Create(ctx context.Context, name, description, createdBy, ipAddress string) (*domain.Project, error) {
	project := &domain.Project{
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, events.AuditRecordedPayload{
		Action:    domain.AuditProjectCreated,
		UserID:    &createdBy,
		TargetID:  &project.ID,
		Details:   fmt.Sprintf("Project %q created", name),
		IPAddress: ipAddress,
	})
	return project, nil
}

// List returns a page of non-deleted projects with their creators joined.
func (s *ProjectService) List(ctx context.Context, page, limit int, search string) ([]domain.Project, int, error) {
	page, limit = clampPagination(page, limit)
	return s.projects.List(ctx, repository.ProjectListFilters{
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
}

// Update applies the given changes to a live project.
func (s *ProjectService) Update(ctx context.Context, id string, update ProjectUpdate, updatedBy, ipAddress string) (*domain.Project, error) {
	project, err := s.getLive(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.Status != nil {
		project.Status = *update.Status
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, events.AuditRecordedPayload{
		Action:    domain.AuditProjectUpdated,
		UserID:    &updatedBy,
		TargetID:  &id,
		Details:   "Project updated",
		IPAddress: ipAddress,
	})
	return project, nil
}

// SoftDelete keeps the row but hides it from listings and stats.
func (s *ProjectService) SoftDelete(ctx context.Context, id, deletedBy, ipAddress string) (*domain.Project, error) {
	project, err := s.getLive(ctx, id)
	if err != nil {
		return nil, err
	}

	project.IsDeleted = true
	project.Status = domain.ProjectStatusDeleted
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, events.AuditRecordedPayload{
		Action:    domain.AuditProjectDeleted,
		UserID:    &deletedBy,
		TargetID:  &id,
		Details:   fmt.Sprintf("Project %q soft deleted", project.Name),
		IPAddress: ipAddress,
	})
	return project, nil
}

func (s *ProjectService) getLive(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Project")
		}
		return nil, err
	}
	if project.IsDeleted {
		return nil, apperrors.NewNotFound("Project")
	}
	return project, nil
}
