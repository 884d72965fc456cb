package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	"github.com/boardhub/board_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBoardRepository struct {
	BaseRepository
}

func newPgxBoardRepository(db *pgxpool.Pool) portsrepo.BoardRepositoryFacade {
	return &PgxBoardRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.BoardRepositoryFacade = (*PgxBoardRepository)(nil)

func toDomainBoard(m models.Board) domain.Board {
	return domain.Board{
		BoardID: m.BoardID,
		Name:    m.Name,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func (r *PgxBoardRepository) FindBoardByID(ctx context.Context, boardID int64) (*domain.Board, error) {
	query := `SELECT board_id, name, created_at, updated_at FROM boards WHERE board_id = $1;`
	var m models.Board
	err := r.Pool.QueryRow(ctx, query, boardID).Scan(&m.BoardID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find board %d: %w", boardID, err)
	}
	b := toDomainBoard(m)
	return &b, nil
}

func (r *PgxBoardRepository) ListBoards(ctx context.Context) ([]domain.Board, error) {
	query := `SELECT board_id, name, created_at, updated_at FROM boards ORDER BY board_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		var m models.Board
		if err := rows.Scan(&m.BoardID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan board row: %w", err)
		}
		boards = append(boards, toDomainBoard(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating board rows: %w", rows.Err())
	}
	return boards, nil
}

func (r *PgxBoardRepository) SaveBoard(ctx context.Context, board *domain.Board) error {
	query := `
        INSERT INTO boards (name, created_at, updated_at)
        VALUES ($1, $2, $3)
        RETURNING board_id;
    `
	err := r.Pool.QueryRow(ctx, query, board.Name, board.CreatedAt, board.UpdatedAt).Scan(&board.BoardID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("board %q already exists: %w", board.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

func (r *PgxBoardRepository) UpdateBoard(ctx context.Context, board domain.Board) error {
	query := `UPDATE boards SET name = $1, updated_at = $2 WHERE board_id = $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, board.Name, board.UpdatedAt, board.BoardID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("board %q already exists: %w", board.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update board %d: %w", board.BoardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("board %d not found: %w", board.BoardID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxBoardRepository) DeleteBoard(ctx context.Context, boardID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM boards WHERE board_id = $1;`, boardID)
	if err != nil {
		return fmt.Errorf("failed to delete board %d: %w", boardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("board %d not found: %w", boardID, apperrors.ErrNotFound)
	}
	return nil
}

// EnsureBoard inserts a board with a fixed ID and moves the ID sequence past it.
func (r *PgxBoardRepository) EnsureBoard(ctx context.Context, board domain.Board) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
        INSERT INTO boards (board_id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (board_id) DO NOTHING;
    `, board.BoardID, board.Name, board.CreatedAt, board.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to ensure board %d: %w", board.BoardID, err)
	}

	_, err = tx.Exec(ctx, `
        SELECT setval(pg_get_serial_sequence('boards', 'board_id'),
                      GREATEST((SELECT MAX(board_id) FROM boards), 1));
    `)
	if err != nil {
		return fmt.Errorf("failed to advance board sequence: %w", err)
	}

	return r.Commit(ctx, tx)
}
