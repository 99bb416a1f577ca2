package repository

import (
	"context"

	"github.com/spec-kit/admin-console/internal/domain"
)

// ProjectListFilters narrows and pages project listings. Soft-deleted rows
// are always excluded.
type ProjectListFilters struct {
	Search string
	Limit  int
	Offset int
}

// ProjectRepository defines persistence access for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	List(ctx context.Context, filters ProjectListFilters) ([]domain.Project, int, error)
	CountLive(ctx context.Context) (int, error)
}

type projectRepository struct {
	db DB
}

// NewProjectRepository returns a Postgres-backed implementation.
func NewProjectRepository(db DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (name, description, created_by)
        VALUES ($1, $2, $3)
        RETURNING id, status, is_deleted, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.CreatedBy,
	).Scan(&project.ID, &project.Status, &project.IsDeleted, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const query = `
        SELECT id, name, description, status, is_deleted, created_by, created_at, updated_at
        FROM projects WHERE id=$1`

	var project domain.Project
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.IsDeleted,
		&project.CreatedBy,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects
        SET name=$1, description=$2, status=$3, is_deleted=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`

	return r.db.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Status,
		project.IsDeleted,
		project.ID,
	).Scan(&project.UpdatedAt)
}

func (r *projectRepository) List(ctx context.Context, filters ProjectListFilters) ([]domain.Project, int, error) {
	const query = `
        SELECT p.id, p.name, p.description, p.status, p.is_deleted, p.created_by,
               p.created_at, p.updated_at,
               u.id, u.name, u.email
        FROM projects p
        JOIN users u ON u.id = p.created_by
        WHERE p.is_deleted = FALSE
          AND ($1 = '' OR p.name ILIKE '%' || $1 || '%' OR p.description ILIKE '%' || $1 || '%')
        ORDER BY p.created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, filters.Search, filters.Limit, filters.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var project domain.Project
		var creator domain.ProjectCreator
		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.Status,
			&project.IsDeleted,
			&project.CreatedBy,
			&project.CreatedAt,
			&project.UpdatedAt,
			&creator.ID,
			&creator.Name,
			&creator.Email,
		); err != nil {
			return nil, 0, err
		}
		project.Creator = &creator
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	const countQuery = `
        SELECT COUNT(*) FROM projects
        WHERE is_deleted = FALSE
          AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')`

	var total int
	if err := r.db.QueryRow(ctx, countQuery, filters.Search).Scan(&total); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *projectRepository) CountLive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM projects WHERE is_deleted = FALSE`
	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
