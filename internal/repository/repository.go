package repository

import (
	"context"

	"devlink/backend/internal/models"
)

// Transactor scopes a group of repository calls to one all-or-nothing unit.
// Repositories pick the transaction up from the context passed to fn.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// IdentityStore owns user records and their privacy flag.
type IdentityStore interface {
	Create(ctx context.Context, user *models.User) error
	// GetUser returns errorx.ErrNotFound when the user does not exist.
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*models.User, error)
}

type ProfileUpdate struct {
	DisplayName       *string
	Bio               *string
	IsPrivate         *bool
	ShowFollowerCount *bool
}

// SocialGraph owns the directed follow edges.
type SocialGraph interface {
	// GetEdge returns nil without error when no edge exists. Inside a transaction the row
	// stays locked until commit.
	GetEdge(ctx context.Context, followerID, followingID uint) (*models.Follow, error)
	// CreateOrGetEdge returns the existing edge unchanged when there is one.
	CreateOrGetEdge(ctx context.Context, followerID, followingID uint, initial models.FollowStatus) (*models.Follow, bool, error)
	// SetStatus moves a pending edge to accepted or rejected and updates edge in place.
	SetStatus(ctx context.Context, edge *models.Follow, status models.FollowStatus) error
	RemoveEdge(ctx context.Context, followerID, followingID uint) (bool, error)
	CountAcceptedFollowers(ctx context.Context, userID uint) (int64, error)
	CountAcceptedFollowing(ctx context.Context, userID uint) (int64, error)
	ListAcceptedFollowers(ctx context.Context, userID uint, offset, limit int) ([]models.Follow, error)
	ListAcceptedFollowing(ctx context.Context, userID uint, offset, limit int) ([]models.Follow, error)
}

type NewNotification struct {
	RecipientID uint
	SenderID    uint
	Type        models.NotificationType
	Status      *models.FollowStatus
	FollowID    *uint
	PostID      *uint
	CommentID   *uint
	Content     string
}

type NotificationFilter struct {
	Type   *models.NotificationType
	IsRead *bool
	Offset int
	// Limit <= 0 means no limit.
	Limit int
}

// NotificationLedger is the append-only notification store.
type NotificationLedger interface {
	Create(ctx context.Context, in NewNotification) (*models.Notification, error)
	// Get returns errorx.ErrNotFound unless the notification exists and belongs to recipientID.
	Get(ctx context.Context, id, recipientID uint) (*models.Notification, error)
	// ListFor returns newest first; equal timestamps keep insertion order, newest first.
	ListFor(ctx context.Context, recipientID uint, filter NotificationFilter) ([]models.Notification, error)
	CountFor(ctx context.Context, recipientID uint, filter NotificationFilter) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uint) (*models.Notification, error)
	// MarkManyRead marks every unread notification of recipientID when ids is empty.
	MarkManyRead(ctx context.Context, recipientID uint, ids []uint) (int64, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	// SetFollowRequestStatus fails with errorx.ErrInvalidState unless the notification is a
	// pending follow_request_received.
	SetFollowRequestStatus(ctx context.Context, id, recipientID uint, status models.FollowStatus) error
	// CancelFollowRequest closes the pending follow_request_received bound to followID and
	// returns how many entries it closed.
	CancelFollowRequest(ctx context.Context, followID uint) (int64, error)
}
