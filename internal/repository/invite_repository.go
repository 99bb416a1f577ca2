package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/domain"
)

// InviteRepository manages single-use registration grants. Invites are keyed
// by email: upserting an email that already has an outstanding invite
// replaces its token, expiry and acceptance marker.
type InviteRepository interface {
	UpsertByEmail(ctx context.Context, invite *domain.Invite) error
	GetByToken(ctx context.Context, token string) (*domain.Invite, error)
	// MarkAccepted claims the invite. It returns pgx.ErrNoRows when the
	// invite is already accepted, so concurrent redemptions resolve to
	// exactly one winner.
	MarkAccepted(ctx context.Context, id string) error
	CountPending(ctx context.Context) (int, error)
	WithTx(tx pgx.Tx) InviteRepository
}

type inviteRepository struct {
	db DB
}

// NewInviteRepository returns a Postgres-backed implementation.
func NewInviteRepository(db DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) WithTx(tx pgx.Tx) InviteRepository {
	return &inviteRepository{db: tx}
}

func (r *inviteRepository) UpsertByEmail(ctx context.Context, invite *domain.Invite) error {
	const query = `
        INSERT INTO invites (email, role, token, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO UPDATE
        SET role=EXCLUDED.role, token=EXCLUDED.token, expires_at=EXCLUDED.expires_at,
            accepted_at=NULL
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		invite.Email,
		invite.Role,
		invite.Token,
		invite.ExpiresAt,
	).Scan(&invite.ID, &invite.CreatedAt)
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (*domain.Invite, error) {
	const query = `
        SELECT id, email, role, token, expires_at, accepted_at, created_at
        FROM invites WHERE token=$1`

	var invite domain.Invite
	if err := r.db.QueryRow(ctx, query, token).Scan(
		&invite.ID,
		&invite.Email,
		&invite.Role,
		&invite.Token,
		&invite.ExpiresAt,
		&invite.AcceptedAt,
		&invite.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) MarkAccepted(ctx context.Context, id string) error {
	const query = `
        UPDATE invites SET accepted_at=NOW()
        WHERE id=$1 AND accepted_at IS NULL`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inviteRepository) CountPending(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM invites WHERE accepted_at IS NULL AND expires_at > NOW()`
	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
