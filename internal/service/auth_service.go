package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/persistence"
	"github.com/spec-kit/admin-console/internal/repository"
	apperrors "github.com/spec-kit/admin-console/pkg/util"
)

// AuthService orchestrates login, invite creation and invite redemption.
type AuthService struct {
	users        repository.UserRepository
	invites      repository.InviteRepository
	sessions     *TokenService
	tokenMgr     *auth.TokenManager
	audit        AuditRecorder
	tx           persistence.TxRunner
	bcryptCost   int
	inviteExpiry time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	InviteRepo repository.InviteRepository
	Sessions   *TokenService
	TokenMgr   *auth.TokenManager
	Audit      AuditRecorder
	Tx         persistence.TxRunner
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		invites:      deps.InviteRepo,
		sessions:     deps.Sessions,
		tokenMgr:     deps.TokenMgr,
		audit:        deps.Audit,
		tx:           deps.Tx,
		bcryptCost:   cfg.BcryptCost,
		inviteExpiry: cfg.InviteExpiry(),
	}
}

// Login authenticates a user by email and password. An unknown email and a
// wrong password produce the same error, so account existence never leaks.
func (s *AuthService) Login(ctx context.Context, email, password, ipAddress string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}

	if user.Status != domain.UserStatusActive {
		return nil, apperrors.NewInactiveUser()
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, apperrors.NewInvalidCredentials()
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, events.AuditRecordedPayload{
		Action:    domain.AuditUserLogin,
		UserID:    &user.ID,
		IPAddress: ipAddress,
	})
	return session, nil
}

// CreateInvite upserts a single-use registration grant keyed by email.
// Re-inviting an email with an outstanding invite replaces its token and
// expiry; the old token stops being redeemable.
func (s *AuthService) CreateInvite(ctx context.Context, email string, role domain.Role, invitedBy, ipAddress string) (*domain.Invite, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewUserAlreadyExists()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	token, err := auth.GenerateOpaqueToken(auth.InviteTokenBytes)
	if err != nil {
		return nil, err
	}

	invite := &domain.Invite{
		Email:     email,
		Role:      role,
		Token:     token,
		ExpiresAt: time.Now().Add(s.inviteExpiry),
	}
	if err := s.invites.UpsertByEmail(ctx, invite); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, events.AuditRecordedPayload{
		Action:    domain.AuditInviteCreated,
		UserID:    &invitedBy,
		TargetID:  &invite.ID,
		Details:   fmt.Sprintf("Invited %s as %s", email, role),
		IPAddress: ipAddress,
	})
	return invite, nil
}

// RegisterViaInvite redeems an invite token, creating an ACTIVE user with
// the invite's role and email. Marking the invite accepted and creating the
// user commit in one transaction, so redeeming the same token twice can
// never create two users.
func (s *AuthService) RegisterViaInvite(ctx context.Context, token, name, password, ipAddress string) (*Session, error) {
	invite, err := s.invites.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInviteNotFound()
		}
		return nil, err
	}

	if invite.AcceptedAt != nil {
		return nil, apperrors.NewInviteAlreadyUsed()
	}
	if invite.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.NewInviteExpired()
	}

	// Race guard: the email may have been claimed since the invite was made.
	if _, err := s.users.GetByEmail(ctx, invite.Email); err == nil {
		return nil, apperrors.NewUserAlreadyExists()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.invites.WithTx(tx).MarkAccepted(ctx, invite.ID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewInviteAlreadyUsed()
			}
			return err
		}

		created := &domain.User{
			Name:         name,
			Email:        invite.Email,
			PasswordHash: hash,
			Role:         invite.Role,
			Status:       domain.UserStatusActive,
			InvitedAt:    &invite.CreatedAt,
		}
		if err := s.users.WithTx(tx).Create(ctx, created); err != nil {
			if repository.IsUniqueViolation(err) {
				return apperrors.NewUserAlreadyExists()
			}
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, events.AuditRecordedPayload{
		Action:    domain.AuditUserCreated,
		UserID:    &user.ID,
		Details:   "User registered via invite",
		IPAddress: ipAddress,
	})
	s.audit.Record(ctx, events.AuditRecordedPayload{
		Action:    domain.AuditInviteAccepted,
		UserID:    &user.ID,
		TargetID:  &invite.ID,
		IPAddress: ipAddress,
	})
	return session, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*Session, error) {
	accessToken, _, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: accessToken, RefreshToken: refreshToken, User: user}, nil
}
