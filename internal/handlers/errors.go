package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidToken), errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidParent),
		errors.Is(err, apperrors.ErrDepthExceeded):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the mapped status for err. Internal errors are
// logged and answered with fallback so no detail leaks to the client.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)

	switch {
	case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
	case status == http.StatusBadRequest:
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: err.Error()})
	default:
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
		c.JSON(status, ErrorResponse{Error: publicMessage(err)})
	}
}

func publicMessage(err error) string {
	for _, sentinel := range []error{
		apperrors.ErrInvalidCredentials,
		apperrors.ErrInvalidToken,
		apperrors.ErrForbidden,
		apperrors.ErrNotFound,
		apperrors.ErrDuplicate,
		apperrors.ErrUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// parseIDParam reads a positive int64 path parameter, answering 400 when it is malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return id, true
}

// requireUserID returns the authenticated user, answering 401 when it is missing.
func requireUserID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return 0, false
	}
	return userID, true
}
