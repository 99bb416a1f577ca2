package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/admin-console/internal/domain"
)

func TestRefreshRotatesToken(t *testing.T) {
	stack := newAuthStack(t)
	user := stack.seedUser(t, "staff@example.com", "Password1!", domain.RoleStaff, domain.UserStatusActive)

	presented, err := stack.tokens.Issue(context.Background(), user.ID)
	require.NoError(t, err)

	session, err := stack.tokens.Refresh(context.Background(), presented)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.NotEmpty(t, session.RefreshToken)
	require.NotEqual(t, presented, session.RefreshToken)
	require.Equal(t, user.ID, session.User.ID)

	// The consumed token is gone; the replacement works.
	_, err = stack.tokens.Refresh(context.Background(), presented)
	require.Equal(t, "INVALID_REFRESH_TOKEN", domainCode(t, err))

	_, err = stack.tokens.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshConcurrentRotationSingleWinner(t *testing.T) {
	stack := newAuthStack(t)
	user := stack.seedUser(t, "staff@example.com", "Password1!", domain.RoleStaff, domain.UserStatusActive)

	presented, err := stack.tokens.Issue(context.Background(), user.ID)
	require.NoError(t, err)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, results[i] = stack.tokens.Refresh(context.Background(), presented)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		require.Equal(t, "INVALID_REFRESH_TOKEN", domainCode(t, err))
	}
	require.Equal(t, 1, successes)
	// One row remains: the winner's replacement.
	require.Equal(t, 1, stack.refresh.count())
}

func TestRefreshExpiredTokenIsDeleted(t *testing.T) {
	stack := newAuthStack(t)
	user := stack.seedUser(t, "staff@example.com", "Password1!", domain.RoleStaff, domain.UserStatusActive)

	stale := &domain.RefreshToken{
		Token:     "stale-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, stack.refresh.Create(context.Background(), stale))

	_, err := stack.tokens.Refresh(context.Background(), "stale-token")
	require.Equal(t, "EXPIRED_REFRESH_TOKEN", domainCode(t, err))
	require.Equal(t, 0, stack.refresh.count())
}

func TestRefreshRejectsInactiveOwner(t *testing.T) {
	stack := newAuthStack(t)
	user := stack.seedUser(t, "staff@example.com", "Password1!", domain.RoleStaff, domain.UserStatusActive)

	presented, err := stack.tokens.Issue(context.Background(), user.ID)
	require.NoError(t, err)

	_, err = stack.users.UpdateStatus(context.Background(), user.ID, domain.UserStatusInactive)
	require.NoError(t, err)

	_, err = stack.tokens.Refresh(context.Background(), presented)
	require.Equal(t, "INACTIVE_USER", domainCode(t, err))
}

func TestRevokeIsIdempotent(t *testing.T) {
	stack := newAuthStack(t)
	user := stack.seedUser(t, "staff@example.com", "Password1!", domain.RoleStaff, domain.UserStatusActive)

	presented, err := stack.tokens.Issue(context.Background(), user.ID)
	require.NoError(t, err)

	require.NoError(t, stack.tokens.Revoke(context.Background(), presented))
	require.Equal(t, 0, stack.refresh.count())

	require.NoError(t, stack.tokens.Revoke(context.Background(), presented))
	require.NoError(t, stack.tokens.Revoke(context.Background(), "never-issued"))
}

func TestRevokeAllClearsEverySession(t *testing.T) {
	stack := newAuthStack(t)
	user := stack.seedUser(t, "staff@example.com", "Password1!", domain.RoleStaff, domain.UserStatusActive)
	other := stack.seedUser(t, "other@example.com", "Password1!", domain.RoleStaff, domain.UserStatusActive)

	for i := 0; i < 3; i++ {
		_, err := stack.tokens.Issue(context.Background(), user.ID)
		require.NoError(t, err)
	}
	otherToken, err := stack.tokens.Issue(context.Background(), other.ID)
	require.NoError(t, err)

	require.NoError(t, stack.tokens.RevokeAll(context.Background(), user.ID))
	require.Equal(t, 1, stack.refresh.count())

	// The other user's session is untouched.
	_, err = stack.tokens.Refresh(context.Background(), otherToken)
	require.NoError(t, err)
}
