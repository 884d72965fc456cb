package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/platform/config"
	"github.com/boardhub/board_backend/internal/utils"
	"github.com/google/uuid"
)

// sessionUserStore is the slice of user persistence the token service needs.
type sessionUserStore interface {
	portsrepo.UserReader
	portsrepo.UserSessionStore
}

// tokenService implements the TokenSvcFacade for handling JWT access and refresh tokens.
// Access and refresh tokens are signed with different secrets, and only the
// SHA-256 hash of the active refresh token is persisted on the user.
type tokenService struct {
	BaseService
	cfg      *config.Config
	userRepo sessionUserStore
	userAuth portssvc.UserAuthSvc
	now      func() time.Time
}

// TokenServiceOption is a functional option for configuring the token service.
type TokenServiceOption func(*tokenService)

// WithClock replaces time.Now, used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenServiceOption {
	return func(s *tokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo sessionUserStore, userAuth portssvc.UserAuthSvc, opts ...TokenServiceOption) portssvc.TokenSvcFacade {
	s := &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
		userAuth: userAuth,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *tokenService) secretFor(kind domain.TokenKind) (string, error) {
	switch kind {
	case domain.TokenKindAccess:
		return s.cfg.JWTSecret, nil
	case domain.TokenKindRefresh:
		return s.cfg.RefreshTokenSecret, nil
	default:
		return "", fmt.Errorf("unknown token kind %q", kind)
	}
}

// IssueAccessToken creates a new JWT access token for the given user.
func (s *tokenService) IssueAccessToken(ctx context.Context, userID int64) (string, time.Time, error) {
	token, expiry, err := utils.GenerateJWT(userID, string(domain.TokenKindAccess), s.cfg.JWTSecret, s.now(), s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.Int64("user_id", userID))
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiry, nil
}

// IssueRefreshToken creates a new JWT refresh token for the given user.
// Every refresh token carries a random jti, so two tokens issued in the same
// second for the same user still differ.
func (s *tokenService) IssueRefreshToken(ctx context.Context, userID int64) (string, time.Time, error) {
	token, expiry, err := utils.GenerateJWT(userID, string(domain.TokenKindRefresh), s.cfg.RefreshTokenSecret, s.now(), s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer, uuid.NewString())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign refresh token", slog.Int64("user_id", userID))
		return "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, expiry, nil
}

// VerifyToken checks signature, algorithm, expiry and kind.
func (s *tokenService) VerifyToken(ctx context.Context, token string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	secret, err := s.secretFor(kind)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, err := utils.ParseAndValidateJWT(token, secret, s.now)
	if err != nil {
		s.LogDebug(ctx, "Token verification failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Kind != string(kind) || claims.UserID <= 0 || claims.ExpiresAt == nil {
		s.LogDebug(ctx, "Token kind or subject mismatch", slog.String("expected_kind", string(kind)), slog.String("kind", claims.Kind))
		return nil, apperrors.ErrInvalidToken
	}

	return &domain.TokenClaims{
		UserID:    claims.UserID,
		Kind:      kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// RotateIfNearExpiry replaces the persisted refresh token when the presented one
// expires within the rotation window. It returns an empty token when no rotation happened.
func (s *tokenService) RotateIfNearExpiry(ctx context.Context, currentRefreshToken string, userID int64) (string, time.Time, error) {
	claims, err := s.VerifyToken(ctx, currentRefreshToken, domain.TokenKindRefresh)
	if err != nil {
		return "", time.Time{}, err
	}
	if claims.UserID != userID {
		return "", time.Time{}, apperrors.ErrInvalidToken
	}

	if claims.ExpiresAt.Sub(s.now()) >= s.cfg.RefreshTokenRotationWindow {
		return "", time.Time{}, nil
	}

	newToken, expiry, err := s.IssueRefreshToken(ctx, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, utils.HashRefreshToken(newToken), expiry); err != nil {
		s.LogError(ctx, err, "Failed to persist rotated refresh token", slog.Int64("user_id", userID))
		return "", time.Time{}, fmt.Errorf("failed to persist rotated refresh token: %w", err)
	}

	s.LogInfo(ctx, "Refresh token rotated", slog.Int64("user_id", userID), slog.Time("expires_at", expiry))
	return newToken, expiry, nil
}

// Revoke clears the persisted refresh token so it can no longer be exchanged.
func (s *tokenService) Revoke(ctx context.Context, userID int64) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to revoke refresh token", slog.Int64("user_id", userID))
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Login checks the credentials and starts a new session, replacing any previous one.
func (s *tokenService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.userAuth.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}

	accessToken, accessExpiry, err := s.IssueAccessToken(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiry, err := s.IssueRefreshToken(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		s.LogError(ctx, err, "Failed to persist refresh token", slog.Int64("user_id", user.UserID))
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.Int64("user_id", user.UserID))
	return &domain.TokenPair{
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessExpiry,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshExpiry,
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The presented token
// must be the one persisted for the user; anything else is treated as a replay.
func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.VerifyToken(ctx, refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user for refresh: %w", err)
	}

	if user.RefreshTokenExpiryTime == nil || !s.now().Before(*user.RefreshTokenExpiryTime) {
		s.LogWarn(ctx, "Refresh attempted without an active session", slog.Int64("user_id", user.UserID))
		return nil, apperrors.ErrInvalidToken
	}
	if !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		s.LogWarn(ctx, "Refresh token does not match the active session", slog.Int64("user_id", user.UserID))
		return nil, apperrors.ErrInvalidToken
	}

	accessToken, accessExpiry, err := s.IssueAccessToken(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	pair := &domain.TokenPair{
		AccessToken:       accessToken,
		AccessTokenExpiry: accessExpiry,
	}

	rotated, rotatedExpiry, err := s.RotateIfNearExpiry(ctx, refreshToken, user.UserID)
	if err != nil {
		return nil, err
	}
	if rotated != "" {
		pair.RefreshToken = rotated
		pair.RefreshTokenExpiry = rotatedExpiry
	}
	return pair, nil
}

// Logout ends the user's session.
func (s *tokenService) Logout(ctx context.Context, userID int64) error {
	return s.Revoke(ctx, userID)
}
