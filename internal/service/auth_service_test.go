package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/repository"
	apperrors "github.com/spec-kit/admin-console/pkg/util"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type authStack struct {
	auth    *AuthService
	tokens  *TokenService
	users   *memUserRepo
	invites *memInviteRepo
	refresh *memRefreshRepo
	audit   *recordingAudit
}

func newAuthStack(t *testing.T) *authStack {
	t.Helper()

	users := newMemUserRepo()
	invites := newMemInviteRepo()
	refresh := newMemRefreshRepo(users)
	audit := &recordingAudit{}

	tokenMgr := auth.NewTokenManager(testSecret, config.AccessTokenTTL)
	tokenService := NewTokenService(refresh, tokenMgr)
	authService := NewAuthService(config.AuthConfig{
		JWTSecret:         testSecret,
		InviteExpiryHours: 72,
		BcryptCost:        bcrypt.MinCost,
	}, AuthDependencies{
		UserRepo:   users,
		InviteRepo: invites,
		Sessions:   tokenService,
		TokenMgr:   tokenMgr,
		Audit:      audit,
		Tx:         passthroughTx{},
	})

	return &authStack{
		auth:    authService,
		tokens:  tokenService,
		users:   users,
		invites: invites,
		refresh: refresh,
		audit:   audit,
	}
}

func (s *authStack) seedUser(t *testing.T, email, password string, role domain.Role, status domain.UserStatus) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Name:         "Seeded User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
	}
	require.NoError(t, s.users.Create(context.Background(), user))
	return user
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	return de.Code
}

func TestLoginSucceedsForSeededAdmin(t *testing.T) {
	stack := newAuthStack(t)
	stack.seedUser(t, "admin@example.com", "Admin123!", domain.RoleAdmin, domain.UserStatusActive)

	session, err := stack.auth.Login(context.Background(), "admin@example.com", "Admin123!", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.NotEmpty(t, session.RefreshToken)
	require.Equal(t, domain.RoleAdmin, session.User.Role)

	require.Contains(t, stack.audit.actions(), domain.AuditUserLogin)
	require.Equal(t, 1, stack.refresh.count())
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	stack := newAuthStack(t)
	stack.seedUser(t, "admin@example.com", "Admin123!", domain.RoleAdmin, domain.UserStatusActive)

	_, err1 := stack.auth.Login(context.Background(), "admin@example.com", "wrong-password", "")
	_, err2 := stack.auth.Login(context.Background(), "nobody@example.com", "wrong-password", "")

	require.Equal(t, "INVALID_CREDENTIALS", domainCode(t, err1))
	require.Equal(t, "INVALID_CREDENTIALS", domainCode(t, err2))
	require.Equal(t, err1.Error(), err2.Error())
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	stack := newAuthStack(t)
	stack.seedUser(t, "gone@example.com", "Secret123!", domain.RoleStaff, domain.UserStatusInactive)

	_, err := stack.auth.Login(context.Background(), "gone@example.com", "Secret123!", "")
	require.Equal(t, "INACTIVE_USER", domainCode(t, err))
}

func TestCreateInviteRejectsExistingUser(t *testing.T) {
	stack := newAuthStack(t)
	admin := stack.seedUser(t, "admin@example.com", "Admin123!", domain.RoleAdmin, domain.UserStatusActive)

	_, err := stack.auth.CreateInvite(context.Background(), "admin@example.com", domain.RoleStaff, admin.ID, "")
	require.Equal(t, "USER_ALREADY_EXISTS", domainCode(t, err))
}

func TestCreateInviteUpsertsByEmail(t *testing.T) {
	stack := newAuthStack(t)
	admin := stack.seedUser(t, "admin@example.com", "Admin123!", domain.RoleAdmin, domain.UserStatusActive)

	first, err := stack.auth.CreateInvite(context.Background(), "new@example.com", domain.RoleStaff, admin.ID, "")
	require.NoError(t, err)

	second, err := stack.auth.CreateInvite(context.Background(), "new@example.com", domain.RoleManager, admin.ID, "")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.NotEqual(t, first.Token, second.Token)

	// The replaced token is dead; the fresh one registers.
	_, err = stack.auth.RegisterViaInvite(context.Background(), first.Token, "New User", "Password1!", "")
	require.Equal(t, "INVITE_NOT_FOUND", domainCode(t, err))

	session, err := stack.auth.RegisterViaInvite(context.Background(), second.Token, "New User", "Password1!", "")
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, session.User.Role)
}

func TestRegisterViaInviteCreatesActiveUser(t *testing.T) {
	stack := newAuthStack(t)
	admin := stack.seedUser(t, "admin@example.com", "Admin123!", domain.RoleAdmin, domain.UserStatusActive)

	invite, err := stack.auth.CreateInvite(context.Background(), "staff@example.com", domain.RoleStaff, admin.ID, "")
	require.NoError(t, err)

	session, err := stack.auth.RegisterViaInvite(context.Background(), invite.Token, "Staff User", "Password1!", "10.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.NotEmpty(t, session.RefreshToken)
	require.Equal(t, "staff@example.com", session.User.Email)
	require.Equal(t, domain.RoleStaff, session.User.Role)
	require.Equal(t, domain.UserStatusActive, session.User.Status)
	require.NotNil(t, session.User.InvitedAt)

	actions := stack.audit.actions()
	require.Contains(t, actions, domain.AuditUserCreated)
	require.Contains(t, actions, domain.AuditInviteAccepted)

	// The password never round-trips in the clear.
	require.NotEqual(t, "Password1!", session.User.PasswordHash)
	require.True(t, auth.VerifyPassword(session.User.PasswordHash, "Password1!"))
}

func TestRegisterViaInviteSecondRedemptionFails(t *testing.T) {
	stack := newAuthStack(t)
	admin := stack.seedUser(t, "admin@example.com", "Admin123!", domain.RoleAdmin, domain.UserStatusActive)

	invite, err := stack.auth.CreateInvite(context.Background(), "staff@example.com", domain.RoleStaff, admin.ID, "")
	require.NoError(t, err)

	_, err = stack.auth.RegisterViaInvite(context.Background(), invite.Token, "First", "Password1!", "")
	require.NoError(t, err)

	_, err = stack.auth.RegisterViaInvite(context.Background(), invite.Token, "Second", "Password1!", "")
	require.Equal(t, "INVITE_ALREADY_USED", domainCode(t, err))

	// Exactly one user owns the email.
	users, total, err := stack.users.List(context.Background(), repository.UserListFilters{Limit: 100})
	require.NoError(t, err)
	count := 0
	for _, user := range users {
		if user.Email == "staff@example.com" {
			count++
		}
	}
	require.Equal(t, 1, count)
	require.Equal(t, 2, total) // admin + staff
}

func TestRegisterViaInviteExpired(t *testing.T) {
	stack := newAuthStack(t)

	invite := &domain.Invite{
		Email:     "late@example.com",
		Role:      domain.RoleStaff,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, stack.invites.UpsertByEmail(context.Background(), invite))

	_, err := stack.auth.RegisterViaInvite(context.Background(), "expired-token", "Late", "Password1!", "")
	require.Equal(t, "INVITE_EXPIRED", domainCode(t, err))

	_, err = stack.users.GetByEmail(context.Background(), "late@example.com")
	require.Error(t, err)
}

func TestRegisterViaInviteUnknownToken(t *testing.T) {
	stack := newAuthStack(t)

	_, err := stack.auth.RegisterViaInvite(context.Background(), "no-such-token", "Nobody", "Password1!", "")
	require.Equal(t, "INVITE_NOT_FOUND", domainCode(t, err))
}

func TestRegisterViaInviteEmailClaimedMeanwhile(t *testing.T) {
	stack := newAuthStack(t)
	admin := stack.seedUser(t, "admin@example.com", "Admin123!", domain.RoleAdmin, domain.UserStatusActive)

	invite, err := stack.auth.CreateInvite(context.Background(), "claimed@example.com", domain.RoleStaff, admin.ID, "")
	require.NoError(t, err)

	// The email gets claimed through another path after the invite was made.
	stack.seedUser(t, "claimed@example.com", "Other123!", domain.RoleStaff, domain.UserStatusActive)

	_, err = stack.auth.RegisterViaInvite(context.Background(), invite.Token, "Racer", "Password1!", "")
	require.Equal(t, "USER_ALREADY_EXISTS", domainCode(t, err))
}
