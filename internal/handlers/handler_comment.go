package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type commentHandler struct {
	commentService portssvc.CommentSvcFacade
}

func registerCommentRoutes(rg *gin.RouterGroup, cs portssvc.CommentSvcFacade, authRequired gin.HandlerFunc) {
	h := &commentHandler{commentService: cs}

	comments := rg.Group("/comments")
	{
		comments.GET("/post/:postId", h.listComments)
		comments.POST("", authRequired, h.createComment)
		comments.PUT("/:id", authRequired, h.updateComment)
		comments.DELETE("/:id", authRequired, h.deleteComment)
	}
}

// listComments godoc
// @Summary List a post's comments as a tree
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Router /comments/post/{postId} [get]
func (h *commentHandler) listComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	comments, err := h.commentService.ListComments(c.Request.Context(), postID)
	if err != nil {
		respondWithError(c, err, "Failed to list comments")
		return
	}
	c.JSON(http.StatusOK, dto.BuildCommentTree(comments))
}

// createComment godoc
// @Summary Create a comment or reply
// @Description Replies nest under parentId; a reply deeper than the configured maximum is rejected.
// @Tags comments
// @Accept json
// @Produce json
// @Param comment body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse "Validation, invalid parent or depth exceeded"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Post not found"
// @Security BearerAuth
// @Router /comments [post]
func (h *commentHandler) createComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create comment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	authorID, ok := requireUserID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), req, authorID)
	if err != nil {
		respondWithError(c, err, "Failed to create comment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// updateComment godoc
// @Summary Edit own comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param comment body dto.UpdateCommentRequest true "Content"
// @Success 200 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [put]
func (h *commentHandler) updateComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), commentID, req, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to update comment")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

// deleteComment godoc
// @Summary Delete own comment
// @Description Replies to the comment are deleted with it.
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *commentHandler) deleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, actorID); err != nil {
		respondWithError(c, err, "Failed to delete comment")
		return
	}
	c.Status(http.StatusNoContent)
}
