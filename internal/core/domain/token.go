package domain

import "time"

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the verified content of an access or refresh token.
type TokenClaims struct {
	UserID    int64
	Kind      TokenKind
	ExpiresAt time.Time
}

// TokenPair is returned on login and refresh. RefreshToken is empty on a
// refresh that did not rotate the session.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}
