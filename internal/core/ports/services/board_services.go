package services

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/boardhub/board_backend/internal/dto"
)

// BoardReaderSvc defines read operations for boards
type BoardReaderSvc interface {
	GetBoardByID(ctx context.Context, boardID int64) (*domain.Board, error)
	ListBoards(ctx context.Context) ([]domain.Board, error)
}

// BoardWriterSvc defines write operations for boards. Callers enforce the admin role.
type BoardWriterSvc interface {
	CreateBoard(ctx context.Context, req dto.CreateBoardRequest) (*domain.Board, error)
	UpdateBoard(ctx context.Context, boardID int64, req dto.UpdateBoardRequest) (*domain.Board, error)
	DeleteBoard(ctx context.Context, boardID int64) error
}

// BoardSvcFacade combines all board-related service interfaces
type BoardSvcFacade interface {
	BoardReaderSvc
	BoardWriterSvc
	StaticDataService
}
