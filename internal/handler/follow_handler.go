package handler

import (
	"log/slog"
	"net/http"

	"devlink/backend/internal/auth"
	"devlink/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FollowHandler exposes follow and unfollow on user resources.
type FollowHandler struct {
	follows *service.FollowOrchestrator
	log     *slog.Logger
}

func NewFollowHandler(follows *service.FollowOrchestrator, log *slog.Logger) *FollowHandler {
	return &FollowHandler{follows: follows, log: log}
}

// UnfollowResponse reports whether an edge was removed.
type UnfollowResponse struct {
	Changed bool `json:"changed"`
}

// Follow godoc
// @Summary      Follow a user
// @Description  Follows a public user immediately or sends a follow request to a private one. Following again returns the current state.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  service.FollowResult
// @Failure      400  {object}  ErrorResponse "Invalid ID or self follow"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      503  {object}  ErrorResponse
// @Router       /users/{id}/follow [post]
func (h *FollowHandler) Follow(c *gin.Context) {
	viewerID, _ := auth.UserID(c)
	targetID, ok := parseIDParam(c, "id", "target user ID")
	if !ok {
		return
	}

	result, err := h.follows.Follow(c.Request.Context(), viewerID, targetID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Description  Removes the follow edge whatever its status. A pending request is cancelled. Unfollowing someone you do not follow is a no-op.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  UnfollowResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /users/{id}/follow [delete]
func (h *FollowHandler) Unfollow(c *gin.Context) {
	viewerID, _ := auth.UserID(c)
	targetID, ok := parseIDParam(c, "id", "target user ID")
	if !ok {
		return
	}

	removed, err := h.follows.Unfollow(c.Request.Context(), viewerID, targetID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, UnfollowResponse{Changed: removed})
}
