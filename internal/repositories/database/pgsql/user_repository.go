package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	"github.com/boardhub/board_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, password_hash, nickname, role, created_at, updated_at, refresh_token_hash, refresh_token_expiry_time`

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	u := domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Nickname:     m.Nickname,
		Role:         domain.Role(m.Role),
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
	if m.RefreshTokenHash.Valid {
		u.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		expiry := m.RefreshTokenExpiryTime.Time
		u.RefreshTokenExpiryTime = &expiry
	}
	return u
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.Nickname,
		&m.Role,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	if err != nil {
		return nil, err
	}
	u := toDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	query := `
        INSERT INTO users (email, password_hash, nickname, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING user_id;
    `
	err := r.Pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Nickname,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s is already registered: %w", user.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %d: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET email = $1, password_hash = $2, nickname = $3, role = $4, updated_at = $5
        WHERE user_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Nickname,
		string(user.Role),
		user.UpdatedAt,
		user.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s is already registered: %w", user.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID int64, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	query := `
        UPDATE users
        SET refresh_token_hash = $1, refresh_token_expiry_time = $2
        WHERE user_id = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		sql.NullString{String: refreshTokenHash, Valid: refreshTokenHash != ""},
		sql.NullTime{Time: refreshTokenExpiryTime, Valid: !refreshTokenExpiryTime.IsZero()},
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %d: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID int64) error {
	query := `
        UPDATE users
        SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL
        WHERE user_id = $1;
    `
	if _, err := r.Pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token for user %d: %w", userID, err)
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
