package models

import (
	"database/sql"
)

// User is a row of the users table.
type User struct {
	UserID       int64  `db:"user_id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Nickname     string `db:"nickname"`
	Role         string `db:"role"`
	Timestamps

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}
