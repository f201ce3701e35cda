package memory

import (
	"context"
	"slices"

	"devlink/backend/internal/errorx"
	"devlink/backend/internal/models"
	"devlink/backend/internal/repository"
)

type notificationRepository struct {
	s *Store
}

func NewNotificationRepository(s *Store) repository.NotificationLedger {
	return &notificationRepository{s: s}
}

func (r *notificationRepository) Create(_ context.Context, in repository.NewNotification) (*models.Notification, error) {
	if !in.Type.Valid() {
		return nil, errorx.New(errorx.BadRequest, "Unknown notification type %q", in.Type)
	}
	if in.Status != nil && in.Type != models.NotificationFollowRequestReceived {
		return nil, errorx.New(errorx.BadRequest, "Only follow requests carry a status")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextNotifyID++
	n := models.Notification{
		ID:          r.s.nextNotifyID,
		RecipientID: in.RecipientID,
		SenderID:    in.SenderID,
		Type:        in.Type,
		FollowID:    in.FollowID,
		PostID:      in.PostID,
		CommentID:   in.CommentID,
		Content:     in.Content,
		CreatedAt:   r.s.now(),
	}
	if in.Status != nil {
		status := *in.Status
		n.Status = &status
	}
	r.s.notifications[n.ID] = n

	return &n, nil
}

func (r *notificationRepository) Get(_ context.Context, id, recipientID uint) (*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return nil, errorx.New(errorx.NotFound, "Notification not found")
	}
	return &n, nil
}

func matches(n models.Notification, recipientID uint, filter repository.NotificationFilter) bool {
	if n.RecipientID != recipientID {
		return false
	}
	if filter.Type != nil && n.Type != *filter.Type {
		return false
	}
	if filter.IsRead != nil && n.IsRead != *filter.IsRead {
		return false
	}
	return true
}

func (r *notificationRepository) ListFor(
	_ context.Context, recipientID uint, filter repository.NotificationFilter,
) ([]models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := []models.Notification{}
	for _, n := range r.s.notifications {
		if matches(n, recipientID, filter) {
			result = append(result, n)
		}
	}

	slices.SortFunc(result, func(a, b models.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID) - int(a.ID)
	})

	return page(result, filter.Offset, filter.Limit), nil
}

func (r *notificationRepository) CountFor(
	_ context.Context, recipientID uint, filter repository.NotificationFilter,
) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, n := range r.s.notifications {
		if matches(n, recipientID, filter) {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(_ context.Context, id, recipientID uint) (*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return nil, errorx.New(errorx.NotFound, "Notification not found")
	}

	n.IsRead = true
	r.s.notifications[id] = n
	return &n, nil
}

func (r *notificationRepository) MarkManyRead(_ context.Context, recipientID uint, ids []uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var updated int64
	for id, n := range r.s.notifications {
		if n.RecipientID != recipientID || n.IsRead {
			continue
		}
		if len(ids) > 0 && !slices.Contains(ids, id) {
			continue
		}

		n.IsRead = true
		r.s.notifications[id] = n
		updated++
	}
	return updated, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	isRead := false
	return r.CountFor(ctx, recipientID, repository.NotificationFilter{IsRead: &isRead})
}

func (r *notificationRepository) SetFollowRequestStatus(
	_ context.Context, id, recipientID uint, status models.FollowStatus,
) error {
	if status != models.FollowAccepted && status != models.FollowRejected {
		return errorx.New(errorx.InvalidState, "Cannot move a follow request to %q", status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok || n.RecipientID != recipientID || !n.Actionable() {
		return errorx.New(errorx.InvalidState, "Follow request already handled")
	}

	n.Status = &status
	r.s.notifications[id] = n
	return nil
}

func (r *notificationRepository) CancelFollowRequest(_ context.Context, followID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cancelled := models.FollowCancelled
	var closed int64
	for id, n := range r.s.notifications {
		if n.FollowID == nil || *n.FollowID != followID || !n.Actionable() {
			continue
		}

		n.Status = &cancelled
		r.s.notifications[id] = n
		closed++
	}
	return closed, nil
}
