package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type boardHandler struct {
	boardService portssvc.BoardSvcFacade
}

// registerBoardRoutes registers public board reads and admin-only board writes.
func registerBoardRoutes(rg *gin.RouterGroup, bs portssvc.BoardSvcFacade, authRequired, adminRequired gin.HandlerFunc) {
	h := &boardHandler{boardService: bs}

	boards := rg.Group("/boards")
	{
		boards.GET("", h.listBoards)
		boards.GET("/:id", h.getBoard)
		boards.POST("", authRequired, adminRequired, h.createBoard)
		boards.PUT("/:id", authRequired, adminRequired, h.updateBoard)
		boards.DELETE("/:id", authRequired, adminRequired, h.deleteBoard)
	}
}

// listBoards godoc
// @Summary List boards
// @Tags boards
// @Produce json
// @Success 200 {array} dto.BoardResponse
// @Failure 500 {object} ErrorResponse
// @Router /boards [get]
func (h *boardHandler) listBoards(c *gin.Context) {
	boards, err := h.boardService.ListBoards(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list boards")
		return
	}
	c.JSON(http.StatusOK, dto.ToBoardResponses(boards))
}

// getBoard godoc
// @Summary Get a board
// @Tags boards
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {object} dto.BoardResponse
// @Failure 404 {object} ErrorResponse
// @Router /boards/{id} [get]
func (h *boardHandler) getBoard(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	board, err := h.boardService.GetBoardByID(c.Request.Context(), boardID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve board")
		return
	}
	c.JSON(http.StatusOK, dto.ToBoardResponse(board))
}

// createBoard godoc
// @Summary Create a board
// @Tags boards
// @Accept json
// @Produce json
// @Param board body dto.CreateBoardRequest true "Board"
// @Success 201 {object} dto.BoardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /boards [post]
func (h *boardHandler) createBoard(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	board, err := h.boardService.CreateBoard(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create board")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Board created", slog.Int64("board_id", board.BoardID))
	c.JSON(http.StatusCreated, dto.ToBoardResponse(board))
}

// updateBoard godoc
// @Summary Rename a board
// @Tags boards
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param board body dto.UpdateBoardRequest true "Board"
// @Success 200 {object} dto.BoardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /boards/{id} [put]
func (h *boardHandler) updateBoard(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	board, err := h.boardService.UpdateBoard(c.Request.Context(), boardID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update board")
		return
	}
	c.JSON(http.StatusOK, dto.ToBoardResponse(board))
}

// deleteBoard godoc
// @Summary Delete a board
// @Description Deletes the board and every post on it.
// @Tags boards
// @Param id path int true "Board ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /boards/{id} [delete]
func (h *boardHandler) deleteBoard(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.boardService.DeleteBoard(c.Request.Context(), boardID); err != nil {
		respondWithError(c, err, "Failed to delete board")
		return
	}
	c.Status(http.StatusNoContent)
}
