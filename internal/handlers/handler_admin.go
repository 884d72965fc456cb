package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler exposes overrides on any account or post. Routes are guarded by RequireAdmin.
type adminHandler struct {
	userService portssvc.UserSvcFacade
	postService portssvc.PostSvcFacade
}

func registerAdminRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, ps portssvc.PostSvcFacade) {
	h := &adminHandler{userService: us, postService: ps}

	rg.GET("/account/:id", h.getUser)
	rg.PUT("/account/:id", h.updateUser)
	rg.DELETE("/account/:id", h.deleteUser)
	rg.PUT("/post/:id", h.updatePost)
	rg.DELETE("/post/:id", h.deletePost)
}

// getUser godoc
// @Summary Get any account
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Admin permission required"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/account/{id} [get]
func (h *adminHandler) getUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update any account
// @Description Updates email, password, nickname or role of any user.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body dto.AdminUpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/account/{id} [put]
func (h *adminHandler) updateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.AdminUpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Admin updated user", slog.Int64("target_user_id", userID))
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete any account
// @Tags admin
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/account/{id} [delete]
func (h *adminHandler) deleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.AdminDeleteUser(c.Request.Context(), userID); err != nil {
		respondWithError(c, err, "Failed to delete user")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Admin deleted user", slog.Int64("target_user_id", userID))
	c.Status(http.StatusNoContent)
}

// updatePost godoc
// @Summary Update any post
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body dto.UpdatePostRequest true "Fields to update"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/post/{id} [put]
func (h *adminHandler) updatePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	post, err := h.postService.AdminUpdatePost(c.Request.Context(), postID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// deletePost godoc
// @Summary Delete any post
// @Tags admin
// @Param id path int true "Post ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/post/{id} [delete]
func (h *adminHandler) deletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.postService.AdminDeletePost(c.Request.Context(), postID); err != nil {
		respondWithError(c, err, "Failed to delete post")
		return
	}
	c.Status(http.StatusNoContent)
}
