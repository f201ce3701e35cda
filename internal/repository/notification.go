package repository

import (
	"context"
	"errors"

	"devlink/backend/internal/database"
	"devlink/backend/internal/errorx"
	"devlink/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns the gorm backed notification ledger.
func NewNotificationRepository(db *gorm.DB) NotificationLedger {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, in NewNotification) (*models.Notification, error) {
	if !in.Type.Valid() {
		return nil, errorx.New(errorx.BadRequest, "Unknown notification type %q", in.Type)
	}
	if in.Status != nil && in.Type != models.NotificationFollowRequestReceived {
		return nil, errorx.New(errorx.BadRequest, "Only follow requests carry a status")
	}

	n := models.Notification{
		RecipientID: in.RecipientID,
		SenderID:    in.SenderID,
		Type:        in.Type,
		Status:      in.Status,
		FollowID:    in.FollowID,
		PostID:      in.PostID,
		CommentID:   in.CommentID,
		Content:     in.Content,
	}
	if err := database.Conn(ctx, r.db).Omit(clause.Associations).Create(&n).Error; err != nil {
		return nil, err
	}

	return &n, nil
}

func (r *notificationRepository) Get(ctx context.Context, id, recipientID uint) (*models.Notification, error) {
	var n models.Notification
	err := database.ForUpdate(ctx, database.Conn(ctx, r.db)).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Take(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Notification not found")
		}
		return nil, err
	}

	return &n, nil
}

func (r *notificationRepository) filtered(ctx context.Context, recipientID uint, filter NotificationFilter) *gorm.DB {
	tx := database.Conn(ctx, r.db).Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
	if filter.Type != nil {
		tx = tx.Where("type = ?", *filter.Type)
	}
	if filter.IsRead != nil {
		tx = tx.Where("is_read = ?", *filter.IsRead)
	}
	return tx
}

func (r *notificationRepository) ListFor(
	ctx context.Context, recipientID uint, filter NotificationFilter,
) ([]models.Notification, error) {
	tx := r.filtered(ctx, recipientID, filter).Order("created_at DESC, id DESC")
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	result := []models.Notification{}
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) CountFor(
	ctx context.Context, recipientID uint, filter NotificationFilter,
) (int64, error) {
	var count int64
	err := r.filtered(ctx, recipientID, filter).Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID uint) (*models.Notification, error) {
	tx := database.Conn(ctx, r.db).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if tx.Error != nil {
		return nil, tx.Error
	}

	// Postgres and sqlite report matched rows, so an already-read notification still counts.
	if tx.RowsAffected == 0 {
		return nil, errorx.New(errorx.NotFound, "Notification not found")
	}

	return r.Get(ctx, id, recipientID)
}

func (r *notificationRepository) MarkManyRead(ctx context.Context, recipientID uint, ids []uint) (int64, error) {
	tx := database.Conn(ctx, r.db).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false)
	if len(ids) > 0 {
		tx = tx.Where("id IN ?", ids)
	}

	tx = tx.Update("is_read", true)
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	isRead := false
	return r.CountFor(ctx, recipientID, NotificationFilter{IsRead: &isRead})
}

func (r *notificationRepository) SetFollowRequestStatus(
	ctx context.Context, id, recipientID uint, status models.FollowStatus,
) error {
	if status != models.FollowAccepted && status != models.FollowRejected {
		return errorx.New(errorx.InvalidState, "Cannot move a follow request to %q", status)
	}

	tx := database.Conn(ctx, r.db).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Where("type = ? AND status = ?", models.NotificationFollowRequestReceived, models.FollowPending).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return errorx.New(errorx.InvalidState, "Follow request already handled")
	}

	return nil
}

func (r *notificationRepository) CancelFollowRequest(ctx context.Context, followID uint) (int64, error) {
	tx := database.Conn(ctx, r.db).
		Model(&models.Notification{}).
		Where("follow_id = ?", followID).
		Where("type = ? AND status = ?", models.NotificationFollowRequestReceived, models.FollowPending).
		Update("status", models.FollowCancelled)
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}
