package service

import (
	"context"

	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"
)

// NotificationService serves the read side of the ledger to the API.
type NotificationService struct {
	ledger repository.NotificationLedger
}

func NewNotificationService(ledger repository.NotificationLedger) *NotificationService {
	return &NotificationService{ledger: ledger}
}

// List returns one page of the recipient's notifications, newest first, and the total
// number matching the filter.
func (s *NotificationService) List(
	ctx context.Context, recipientID uint, filter repository.NotificationFilter,
) ([]models.Notification, int64, error) {
	total, err := s.ledger.CountFor(ctx, recipientID, filter)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.ledger.ListFor(ctx, recipientID, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uint) (*models.Notification, error) {
	return s.ledger.MarkRead(ctx, id, recipientID)
}

// MarkManyRead marks ids read, or every unread notification when ids is empty.
func (s *NotificationService) MarkManyRead(ctx context.Context, recipientID uint, ids []uint) (int64, error) {
	return s.ledger.MarkManyRead(ctx, recipientID, ids)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.ledger.CountUnread(ctx, recipientID)
}
