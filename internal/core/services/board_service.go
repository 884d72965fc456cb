package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
)

type boardService struct {
	BaseService
	boardRepo portsrepo.BoardRepositoryFacade
	cleaner   *PostCleaner
}

// BoardServiceOption is a functional option for configuring the board service.
type BoardServiceOption func(*boardService)

// WithBoardPostCleaner releases index entries and blobs of the posts a board delete cascades to.
func WithBoardPostCleaner(cleaner *PostCleaner) BoardServiceOption {
	return func(s *boardService) {
		s.cleaner = cleaner
	}
}

// NewBoardService creates a new board service.
func NewBoardService(boardRepo portsrepo.BoardRepositoryFacade, opts ...BoardServiceOption) portssvc.BoardSvcFacade {
	s := &boardService{boardRepo: boardRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.BoardSvcFacade = (*boardService)(nil)

// InitializeStaticData seeds the default boards that do not exist yet.
func (s *boardService) InitializeStaticData(ctx context.Context) error {
	now := time.Now().UTC()
	for _, b := range domain.DefaultBoards {
		board := b
		board.CreatedAt = now
		board.UpdatedAt = now
		if err := s.boardRepo.EnsureBoard(ctx, board); err != nil {
			s.LogError(ctx, err, "Failed to seed board", slog.Int64("board_id", board.BoardID))
			return fmt.Errorf("failed to seed board %q: %w", board.Name, err)
		}
	}
	s.LogInfo(ctx, "Default boards ensured", slog.Int("count", len(domain.DefaultBoards)))
	return nil
}

func (s *boardService) CreateBoard(ctx context.Context, req dto.CreateBoardRequest) (*domain.Board, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("board name is required: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	board := &domain.Board{
		Name:       name,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.boardRepo.SaveBoard(ctx, board); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create board")
		}
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	s.LogInfo(ctx, "Board created", slog.Int64("board_id", board.BoardID))
	return board, nil
}

func (s *boardService) GetBoardByID(ctx context.Context, boardID int64) (*domain.Board, error) {
	board, err := s.boardRepo.FindBoardByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board %d: %w", boardID, err)
	}
	return board, nil
}

func (s *boardService) ListBoards(ctx context.Context) ([]domain.Board, error) {
	boards, err := s.boardRepo.ListBoards(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list boards")
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

func (s *boardService) UpdateBoard(ctx context.Context, boardID int64, req dto.UpdateBoardRequest) (*domain.Board, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("board name is required: %w", apperrors.ErrValidation)
	}

	board, err := s.boardRepo.FindBoardByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load board %d: %w", boardID, err)
	}
	board.Name = name
	board.UpdatedAt = time.Now().UTC()

	if err := s.boardRepo.UpdateBoard(ctx, *board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// DeleteBoard removes the board. Its posts go with it, so they are listed
// first and released from the search index and blob storage afterwards.
func (s *boardService) DeleteBoard(ctx context.Context, boardID int64) error {
	var posts []domain.Post
	if s.cleaner != nil {
		var err error
		if posts, err = s.cleaner.postsOnBoard(ctx, boardID); err != nil {
			s.LogError(ctx, err, "Failed to list posts before board delete", slog.Int64("board_id", boardID))
			return err
		}
	}

	if err := s.boardRepo.DeleteBoard(ctx, boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if s.cleaner != nil {
		s.cleaner.release(ctx, posts)
	}
	s.LogInfo(ctx, "Board deleted", slog.Int64("board_id", boardID))
	return nil
}
