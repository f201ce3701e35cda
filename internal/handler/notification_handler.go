package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"devlink/backend/internal/auth"
	"devlink/backend/internal/errorx"
	"devlink/backend/internal/hub"
	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"
	"devlink/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// NotificationResponse is a ledger entry as shown to its recipient.
type NotificationResponse struct {
	models.Notification
	// Actionable is true while the entry is a follow request that can still be answered.
	Actionable bool `json:"actionable"`
}

// PaginatedNotificationResponse defines the structure for a paginated list of notifications.
type PaginatedNotificationResponse struct {
	Data []NotificationResponse `json:"data"`
	Meta PaginationMeta         `json:"meta"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count" example:"3"`
}

// MarkManyReadInput lists the notifications to mark. An empty list marks every unread one.
type MarkManyReadInput struct {
	IDs []uint `json:"ids"`
}

type MarkManyReadResponse struct {
	Updated int64 `json:"updated" example:"5"`
}

// RespondInput answers a follow request.
type RespondInput struct {
	Action string `json:"action" binding:"required,oneof=accept reject" example:"accept"`
}

// endregion

// NotificationHandler serves the recipient's notification ledger.
type NotificationHandler struct {
	notifications *service.NotificationService
	follows       *service.FollowOrchestrator
	hub           *hub.Hub
	log           *slog.Logger
	heartbeat     time.Duration
}

func NewNotificationHandler(
	notifications *service.NotificationService,
	follows *service.FollowOrchestrator,
	h *hub.Hub,
	log *slog.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		follows:       follows,
		hub:           h,
		log:           log,
		heartbeat:     25 * time.Second,
	}
}

func toNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{Notification: n, Actionable: n.Actionable()}
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  Lists the current user's notifications, newest first, optionally filtered by type and read state.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        type    query     string  false  "Notification type" Enums(follow, follow_request_received, follow_request_sent, follow_accepted, like, comment)
// @Param        is_read query     bool    false  "Filter by read state"
// @Param        page    query     int     false  "Page number" default(1)
// @Param        limit   query     int     false  "Items per page" default(20)
// @Success      200     {object}  PaginatedNotificationResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	viewerID, _ := auth.UserID(c)

	page, err := parsePage(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	filter := repository.NotificationFilter{Offset: page.Offset(), Limit: page.Limit}

	if raw := c.Query("type"); raw != "" {
		typ := models.NotificationType(raw)
		if !typ.Valid() {
			respondError(c, h.log, errorx.New(errorx.BadRequest, "Unknown notification type %q", raw))
			return
		}
		filter.Type = &typ
	}

	if raw := c.Query("is_read"); raw != "" {
		isRead, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, h.log, errorx.New(errorx.BadRequest, "is_read must be true or false"))
			return
		}
		filter.IsRead = &isRead
	}

	items, total, err := h.notifications.List(c.Request.Context(), viewerID, filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	responses := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, toNotificationResponse(n))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, total, page.Page, page.Limit))
}

// GetUnreadCount godoc
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UnreadCountResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	viewerID, _ := auth.UserID(c)

	count, err := h.notifications.UnreadCount(c.Request.Context(), viewerID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Description  Idempotent; marking a read notification again succeeds.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  NotificationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	viewerID, _ := auth.UserID(c)
	id, ok := parseIDParam(c, "id", "notification ID")
	if !ok {
		return
	}

	n, err := h.notifications.MarkRead(c.Request.Context(), id, viewerID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toNotificationResponse(*n))
}

// MarkManyRead godoc
// @Summary      Mark notifications as read
// @Description  Marks the given notifications as read, or every unread one when no IDs are sent.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MarkManyReadInput false "Notification IDs"
// @Success      200  {object}  MarkManyReadResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/read [post]
func (h *NotificationHandler) MarkManyRead(c *gin.Context) {
	viewerID, _ := auth.UserID(c)

	var input MarkManyReadInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.notifications.MarkManyRead(c.Request.Context(), viewerID, input.IDs)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, MarkManyReadResponse{Updated: updated})
}

// Respond godoc
// @Summary      Answer a follow request
// @Description  Accepts or rejects the follow request behind a follow_request_received notification.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Notification ID"
// @Param        input body      RespondInput  true  "Answer"
// @Success      200   {object}  service.FollowResult
// @Failure      400   {object}  ErrorResponse "Invalid input or request already handled"
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Follow request not found"
// @Failure      503   {object}  ErrorResponse
// @Router       /notifications/{id}/respond [post]
func (h *NotificationHandler) Respond(c *gin.Context) {
	viewerID, _ := auth.UserID(c)
	id, ok := parseIDParam(c, "id", "notification ID")
	if !ok {
		return
	}

	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	respond := h.follows.Accept
	if input.Action == "reject" {
		respond = h.follows.Reject
	}

	result, err := respond(c.Request.Context(), viewerID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Stream godoc
// @Summary      Stream notifications
// @Description  Server-sent events with every notification created for the current user. Browsers may pass the token as access_token.
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/stream [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	viewerID, _ := auth.UserID(c)

	client := make(hub.Client, 16)
	h.hub.Subscribe(viewerID, client)
	defer h.hub.Unsubscribe(viewerID, client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-client:
			if !ok {
				return
			}
			c.SSEvent("notification", string(msg))
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", "")
			c.Writer.Flush()
		}
	}
}
