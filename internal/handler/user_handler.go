package handler

import (
	"context"
	"log/slog"
	"net/http"

	"devlink/backend/internal/auth"
	"devlink/backend/internal/errorx"
	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"
	"devlink/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID             uint   `json:"id" example:"1"`
	Nickname       string `json:"nickname" example:"testuser"`
	DisplayName    string `json:"display_name" example:"Test User"`
	Bio            string `json:"bio"`
	IsPrivate      bool   `json:"is_private"`
	FollowersCount *int64 `json:"followers_count,omitempty"`
	FollowingCount *int64 `json:"following_count,omitempty"`
	// Relationship is the viewer's follow state towards this user.
	Relationship models.RelationshipState `json:"relationship" example:"NONE"`
	// FollowsYou is this user's follow state towards the viewer.
	FollowsYou models.RelationshipState `json:"follows_you" example:"NONE"`
	CanView    bool                     `json:"can_view"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID                uint   `json:"id" example:"1"`
	Nickname          string `json:"nickname" example:"testuser"`
	Email             string `json:"email" example:"test@example.com"`
	DisplayName       string `json:"display_name" example:"Test User"`
	Bio               string `json:"bio"`
	IsPrivate         bool   `json:"is_private"`
	ShowFollowerCount bool   `json:"show_follower_count"`
	FollowersCount    int64  `json:"followers_count"`
	FollowingCount    int64  `json:"following_count"`
}

// UserSummary is a row in follower and following lists.
type UserSummary struct {
	ID          uint   `json:"id" example:"1"`
	Nickname    string `json:"nickname" example:"testuser"`
	DisplayName string `json:"display_name" example:"Test User"`
	IsPrivate   bool   `json:"is_private"`
}

// UpdateProfileInput defines the fields a user can change on their own profile.
type UpdateProfileInput struct {
	DisplayName       *string `json:"display_name" binding:"omitempty,max=50" example:"Test User"`
	Bio               *string `json:"bio" binding:"omitempty,max=500"`
	IsPrivate         *bool   `json:"is_private" example:"true"`
	ShowFollowerCount *bool   `json:"show_follower_count" example:"true"`
}

// PaginatedUserResponse defines the structure for a paginated list of users.
type PaginatedUserResponse struct {
	Data []UserSummary  `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// UserHandler serves profiles and follower lists.
type UserHandler struct {
	users repository.IdentityStore
	gate  *service.FeedGate
	log   *slog.Logger
}

func NewUserHandler(users repository.IdentityStore, gate *service.FeedGate, log *slog.Logger) *UserHandler {
	return &UserHandler{users: users, gate: gate, log: log}
}

// region --- User Handlers ---

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	viewerID, _ := auth.UserID(c)

	user, err := h.users.GetUser(c.Request.Context(), viewerID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response, err := h.buildPrivateUserResponse(c.Request.Context(), *user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// UpdateMe godoc
// @Summary      Update current user's profile
// @Description  Changes display name, bio, privacy or follower count visibility. Existing follows are kept when privacy changes.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateProfileInput true "Profile fields to change"
// @Success      200  {object}  PrivateUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	viewerID, _ := auth.UserID(c)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), viewerID, repository.ProfileUpdate{
		DisplayName:       input.DisplayName,
		Bio:               input.Bio,
		IsPrivate:         input.IsPrivate,
		ShowFollowerCount: input.ShowFollowerCount,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("Profile updated", slog.Uint64("user_id", uint64(user.ID)), slog.Bool("is_private", user.IsPrivate))

	response, err := h.buildPrivateUserResponse(c.Request.Context(), *user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile for a specific user by their ID, including relationship data.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	viewerID, _ := auth.UserID(c)
	targetUserID, ok := parseIDParam(c, "id", "user ID")
	if !ok {
		return
	}

	// If target is the same as viewer, answer with the private profile
	if viewerID != 0 && viewerID == targetUserID {
		h.GetMe(c)
		return
	}

	targetUser, err := h.users.GetUser(c.Request.Context(), targetUserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response, err := h.buildPublicUserResponse(c.Request.Context(), *targetUser, viewerID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetFollowers godoc
// @Summary      List a user's followers
// @Description  Lists accepted followers, newest first. Private accounts only show them to accepted followers.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true   "User ID"
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(20)
// @Success      200   {object}  PaginatedUserResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /users/{id}/followers [get]
func (h *UserHandler) GetFollowers(c *gin.Context) {
	h.listRelations(c, func(ctx context.Context, userID uint, p Page) ([]models.User, int64, error) {
		followers, _, err := h.gate.Counts(ctx, userID)
		if err != nil {
			return nil, 0, err
		}
		users, err := h.gate.Followers(ctx, userID, p.Offset(), p.Limit)
		return users, followers, err
	})
}

// GetFollowing godoc
// @Summary      List who a user follows
// @Description  Lists accepted follows, newest first. Private accounts only show them to accepted followers.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true   "User ID"
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(20)
// @Success      200   {object}  PaginatedUserResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /users/{id}/following [get]
func (h *UserHandler) GetFollowing(c *gin.Context) {
	h.listRelations(c, func(ctx context.Context, userID uint, p Page) ([]models.User, int64, error) {
		_, following, err := h.gate.Counts(ctx, userID)
		if err != nil {
			return nil, 0, err
		}
		users, err := h.gate.Following(ctx, userID, p.Offset(), p.Limit)
		return users, following, err
	})
}

// endregion

// region --- Helpers ---

type relationLister func(ctx context.Context, userID uint, p Page) ([]models.User, int64, error)

func (h *UserHandler) listRelations(c *gin.Context, list relationLister) {
	viewerID, _ := auth.UserID(c)
	targetUserID, ok := parseIDParam(c, "id", "user ID")
	if !ok {
		return
	}

	page, err := parsePage(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	canView, err := h.gate.CanView(c.Request.Context(), viewerID, targetUserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canView {
		respondError(c, h.log, errorx.New(errorx.PermissionDenied, "This account is private"))
		return
	}

	users, total, err := list(c.Request.Context(), targetUserID, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			ID:          u.ID,
			Nickname:    u.Nickname,
			DisplayName: u.Name(),
			IsPrivate:   u.IsPrivate,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(summaries, total, page.Page, page.Limit))
}

func (h *UserHandler) buildPublicUserResponse(ctx context.Context, target models.User, viewerID uint) (PublicUserResponse, error) {
	response := PublicUserResponse{
		ID:           target.ID,
		Nickname:     target.Nickname,
		DisplayName:  target.Name(),
		Bio:          target.Bio,
		IsPrivate:    target.IsPrivate,
		Relationship: models.StateNone,
		FollowsYou:   models.StateNone,
	}

	var err error
	if viewerID != 0 {
		if response.Relationship, err = h.gate.Relationship(ctx, viewerID, target.ID); err != nil {
			return response, err
		}
		if response.FollowsYou, err = h.gate.Relationship(ctx, target.ID, viewerID); err != nil {
			return response, err
		}
	}

	if response.CanView, err = h.gate.CanView(ctx, viewerID, target.ID); err != nil {
		return response, err
	}

	if target.ShowFollowerCount {
		followers, following, err := h.gate.Counts(ctx, target.ID)
		if err != nil {
			return response, err
		}
		response.FollowersCount = &followers
		response.FollowingCount = &following
	}

	return response, nil
}

func (h *UserHandler) buildPrivateUserResponse(ctx context.Context, user models.User) (PrivateUserResponse, error) {
	followers, following, err := h.gate.Counts(ctx, user.ID)
	if err != nil {
		return PrivateUserResponse{}, err
	}

	return PrivateUserResponse{
		ID:                user.ID,
		Nickname:          user.Nickname,
		Email:             user.Email,
		DisplayName:       user.Name(),
		Bio:               user.Bio,
		IsPrivate:         user.IsPrivate,
		ShowFollowerCount: user.ShowFollowerCount,
		FollowersCount:    followers,
		FollowingCount:    following,
	}, nil
}

// endregion
