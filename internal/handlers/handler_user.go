package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests on a user's own account.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers the account routes. rg must already require authentication.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	account := rg.Group("/account")
	{
		account.GET("/:id", h.getUser)       // Own only
		account.PUT("/:id", h.updateUser)    // Own only
		account.DELETE("/:id", h.deleteUser) // Own only
	}
}

// getUser godoc
// @Summary Get own account
// @Description Retrieves the account of the logged-in user
// @Tags account
// @Produce  json
// @Param   id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (trying to access another user's details)"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve user"
// @Security BearerAuth
// @Router /account/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	loggedInUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	if loggedInUserID != userID {
		logger.Warn("User forbidden to access another user's details", slog.Int64("target_id", userID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
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
// @Summary Update own account
// @Description Updates email, password or nickname of the logged-in user. The role cannot be changed here.
// @Tags account
// @Accept  json
// @Produce  json
// @Param   id path int true "User ID to update"
// @Param   user body dto.UpdateUserRequest true "User details to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Failed to update user"
// @Security BearerAuth
// @Router /account/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	loggedInUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), userID, req, loggedInUserID)
	if err != nil {
		respondWithError(c, err, "Failed to update user")
		return
	}

	logger.Info("User updated successfully", slog.Int64("target_user_id", userID))
	c.JSON(http.StatusOK, dto.ToUserResponse(updatedUser))
}

// deleteUser godoc
// @Summary Delete own account
// @Description Deletes the logged-in user's account together with their posts and comments
// @Tags account
// @Produce  json
// @Param   id path int true "User ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Failed to delete user"
// @Security BearerAuth
// @Router /account/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	loggedInUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID, loggedInUserID); err != nil {
		respondWithError(c, err, "Failed to delete user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User deleted successfully", slog.Int64("target_user_id", userID))
	c.Status(http.StatusNoContent)
}
