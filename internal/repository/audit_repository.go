package repository

import (
	"context"

	"github.com/spec-kit/admin-console/internal/domain"
)

// AuditRepository appends and lists security-relevant action records. The
// auth core only ever appends; listing exists for the admin console view.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]domain.AuditLog, int, error)
}

type auditRepository struct {
	db DB
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(db DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(ctx context.Context, entry *domain.AuditLog) error {
	const query = `
        INSERT INTO audit_logs (action, user_id, target_id, details, ip_address)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		entry.Action,
		entry.UserID,
		entry.TargetID,
		entry.Details,
		entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditRepository) List(ctx context.Context, limit, offset int) ([]domain.AuditLog, int, error) {
	const query = `
        SELECT id, action, user_id, target_id, details, ip_address, created_at
        FROM audit_logs
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]domain.AuditLog, 0)
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.UserID,
			&entry.TargetID,
			&entry.Details,
			&entry.IPAddress,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
