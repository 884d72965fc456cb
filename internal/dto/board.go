package dto

import (
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// CreateBoardRequest is the payload for creating or renaming a board.
type CreateBoardRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateBoardRequest renames a board.
type UpdateBoardRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// BoardResponse is a board as exposed to clients.
type BoardResponse struct {
	BoardID   int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToBoardResponse(board *domain.Board) BoardResponse {
	return BoardResponse{
		BoardID:   board.BoardID,
		Name:      board.Name,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
	}
}

func ToBoardResponses(boards []domain.Board) []BoardResponse {
	out := make([]BoardResponse, 0, len(boards))
	for i := range boards {
		out = append(out, ToBoardResponse(&boards[i]))
	}
	return out
}
