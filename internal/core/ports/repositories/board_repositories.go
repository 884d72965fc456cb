package repositories

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// BoardReader defines read operations for boards
type BoardReader interface {
	FindBoardByID(ctx context.Context, boardID int64) (*domain.Board, error)
	ListBoards(ctx context.Context) ([]domain.Board, error)
}

// BoardWriter defines write operations for boards
type BoardWriter interface {
	// SaveBoard inserts a board. A zero BoardID lets the database assign one.
	SaveBoard(ctx context.Context, board *domain.Board) error
	UpdateBoard(ctx context.Context, board domain.Board) error
	DeleteBoard(ctx context.Context, boardID int64) error
	// EnsureBoard inserts the board with its fixed ID unless it already exists.
	EnsureBoard(ctx context.Context, board domain.Board) error
}

// BoardRepositoryFacade combines all board-related repository interfaces
type BoardRepositoryFacade interface {
	BoardReader
	BoardWriter
}
