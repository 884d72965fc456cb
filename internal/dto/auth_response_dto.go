package dto

import "time"

// LoginRequest carries the credentials for a login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token presented for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Message            string    `json:"message"`
	AccessToken        string    `json:"accessToken"`
	AccessTokenExpiry  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken       string    `json:"refreshToken"`
	RefreshTokenExpiry time.Time `json:"refreshTokenExpiresAt"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
// RefreshToken is only present when the session was rotated.
type RefreshTokenResponse struct {
	AccessToken        string     `json:"accessToken"`
	AccessTokenExpiry  time.Time  `json:"accessTokenExpiresAt"`
	RefreshToken       string     `json:"refreshToken,omitempty"`
	RefreshTokenExpiry *time.Time `json:"refreshTokenExpiresAt,omitempty"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
