package repository

import (
	"context"

	"github.com/spec-kit/admin-console/internal/domain"
)

// RefreshTokenRepository persists opaque session continuation tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	// GetByTokenWithUser returns the token row joined with its owning user.
	GetByTokenWithUser(ctx context.Context, token string) (*domain.RefreshToken, *domain.User, error)
	// DeleteByID removes a row and reports whether it existed. Rotation keys
	// off the return value: only the caller that actually deleted the row
	// may issue a replacement.
	DeleteByID(ctx context.Context, id string) (bool, error)
	// DeleteByToken is idempotent; deleting an unknown token is not an error.
	DeleteByToken(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type refreshTokenRepository struct {
	db DB
}

// NewRefreshTokenRepository returns a Postgres-backed implementation.
func NewRefreshTokenRepository(db DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	const query = `
        INSERT INTO refresh_tokens (token, user_id, expires_at)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		token.Token,
		token.UserID,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *refreshTokenRepository) GetByTokenWithUser(ctx context.Context, tokenStr string) (*domain.RefreshToken, *domain.User, error) {
	const query = `
        SELECT t.id, t.token, t.user_id, t.expires_at, t.created_at,
               u.id, u.name, u.email, u.password_hash, u.role, u.status, u.invited_at, u.created_at, u.updated_at
        FROM refresh_tokens t
        JOIN users u ON u.id = t.user_id
        WHERE t.token=$1`

	var token domain.RefreshToken
	var user domain.User
	if err := r.db.QueryRow(ctx, query, tokenStr).Scan(
		&token.ID,
		&token.Token,
		&token.UserID,
		&token.ExpiresAt,
		&token.CreatedAt,
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.InvitedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, nil, err
	}
	return &token, &user, nil
}

func (r *refreshTokenRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM refresh_tokens WHERE id=$1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *refreshTokenRepository) DeleteByToken(ctx context.Context, tokenStr string) error {
	const query = `DELETE FROM refresh_tokens WHERE token=$1`
	_, err := r.db.Exec(ctx, query, tokenStr)
	return err
}

func (r *refreshTokenRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM refresh_tokens WHERE user_id=$1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
