package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/repository"
	apperrors "github.com/spec-kit/admin-console/pkg/util"
)

// Session bundles the credentials returned from login, registration and
// refresh: a signed access token, an opaque refresh token and the public
// user projection.
type Session struct {
	Token        string
	RefreshToken string
	User         *domain.User
}

// TokenService owns the refresh token lifecycle: issue, rotate-on-use,
// revoke, and bulk revocation for administrative response.
type TokenService struct {
	tokens   repository.RefreshTokenRepository
	tokenMgr *auth.TokenManager
}

// NewTokenService builds the service.
func NewTokenService(tokens repository.RefreshTokenRepository, tokenMgr *auth.TokenManager) *TokenService {
	return &TokenService{tokens: tokens, tokenMgr: tokenMgr}
}

// Issue generates and persists a fresh opaque refresh token for the user.
func (s *TokenService) Issue(ctx context.Context, userID string) (string, error) {
	tokenStr, err := auth.GenerateOpaqueToken(auth.RefreshTokenBytes)
	if err != nil {
		return "", err
	}

	token := &domain.RefreshToken{
		Token:     tokenStr,
		UserID:    userID,
		ExpiresAt: time.Now().Add(config.RefreshTokenTTL),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", err
	}
	return tokenStr, nil
}

// Refresh rotates the presented token: the row is deleted and a replacement
// issued, so a given token string survives exactly one successful refresh.
// Of two concurrent rotations of the same token, the loser finds the row
// already gone and fails with an invalid-token error.
func (s *TokenService) Refresh(ctx context.Context, presented string) (*Session, error) {
	token, user, err := s.tokens.GetByTokenWithUser(ctx, presented)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidRefreshToken()
		}
		return nil, err
	}

	if token.ExpiresAt.Before(time.Now()) {
		if _, err := s.tokens.DeleteByID(ctx, token.ID); err != nil {
			return nil, err
		}
		return nil, apperrors.NewExpiredRefreshToken()
	}

	if user.Status != domain.UserStatusActive {
		return nil, apperrors.NewInactiveUser()
	}

	deleted, err := s.tokens.DeleteByID(ctx, token.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperrors.NewInvalidRefreshToken()
	}

	newRefresh, err := s.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	accessToken, _, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &Session{Token: accessToken, RefreshToken: newRefresh, User: user}, nil
}

// Revoke deletes the presented token. Revoking an unknown token is not an
// error.
func (s *TokenService) Revoke(ctx context.Context, presented string) error {
	return s.tokens.DeleteByToken(ctx, presented)
}

// RevokeAll deletes every refresh token owned by the user. No route triggers
// it today; it stays available for forced logout and role-compromise
// response.
func (s *TokenService) RevokeAll(ctx context.Context, userID string) error {
	return s.tokens.DeleteAllForUser(ctx, userID)
}
