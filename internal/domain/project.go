package domain

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
	ProjectStatusDeleted  ProjectStatus = "DELETED"
)

// Project is a managed workspace record. Deletion is soft: the row is kept
// with IsDeleted set and status DELETED.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	IsDeleted   bool
	CreatedBy   string
	Creator     *ProjectCreator
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectCreator is the public projection of the creating user joined into
// project listings.
type ProjectCreator struct {
	ID    string
	Name  string
	Email string
}
