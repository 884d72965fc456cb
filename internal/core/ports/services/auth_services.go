package services

import (
	"context"
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// TokenIssuer signs new tokens. Issuing never touches persistence.
type TokenIssuer interface {
	IssueAccessToken(ctx context.Context, userID int64) (string, time.Time, error)
	IssueRefreshToken(ctx context.Context, userID int64) (string, time.Time, error)
}

// TokenVerifier checks signature, expiry and kind of a token.
type TokenVerifier interface {
	// VerifyToken returns apperrors.ErrInvalidToken for any expired, tampered or wrong-kind token.
	VerifyToken(ctx context.Context, token string, kind domain.TokenKind) (*domain.TokenClaims, error)
}

// SessionManager manages the single persisted refresh token of a user.
type SessionManager interface {
	// RotateIfNearExpiry issues and persists a replacement refresh token when the
	// presented one is inside the rotation window. It returns an empty token otherwise.
	RotateIfNearExpiry(ctx context.Context, currentRefreshToken string, userID int64) (string, time.Time, error)

	// Revoke clears the persisted refresh token.
	Revoke(ctx context.Context, userID int64) error
}

// AuthenticatorSvc implements the login/refresh/logout protocol.
type AuthenticatorSvc interface {
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
}

// TokenSvcFacade combines all token-related service interfaces.
type TokenSvcFacade interface {
	TokenIssuer
	TokenVerifier
	SessionManager
	AuthenticatorSvc
}
