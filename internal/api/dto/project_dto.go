package dto

import (
	"time"

	"github.com/spec-kit/admin-console/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest payload; omitted fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *domain.ProjectStatus `json:"status"`
}

// ProjectCreatorResponse is the creator summary joined into listings.
type ProjectCreatorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectResponse is the wire shape of a project.
type ProjectResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Status      domain.ProjectStatus    `json:"status"`
	IsDeleted   bool                    `json:"isDeleted"`
	CreatedBy   string                  `json:"createdBy"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
	Creator     *ProjectCreatorResponse `json:"creator,omitempty"`
}

// NewProjectResponse maps a project to its wire shape.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		IsDeleted:   project.IsDeleted,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	if project.Creator != nil {
		resp.Creator = &ProjectCreatorResponse{
			ID:    project.Creator.ID,
			Name:  project.Creator.Name,
			Email: project.Creator.Email,
		}
	}
	return resp
}

// NewProjectResponses maps a project slice.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
