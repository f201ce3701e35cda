package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"devlink/backend/internal/errorx"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

func statusOf(code errorx.Code) int {
	switch code {
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.InvalidOperation, errorx.InvalidState, errorx.BadRequest:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.Unavailable, errorx.ConflictRetry:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Errors without a code are logged and hidden
// behind a generic message.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	code := errorx.CodeOf(err)
	status := statusOf(code)

	if status == http.StatusInternalServerError {
		log.Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// parseIDParam reads a positive numeric path parameter, writing a 400 when it is invalid.
func parseIDParam(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + label})
		return 0, false
	}
	return uint(id), true
}
