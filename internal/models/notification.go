package models

import "time"

type NotificationType string

const (
	NotificationFollow                NotificationType = "follow"
	NotificationFollowRequestReceived NotificationType = "follow_request_received"
	NotificationFollowRequestSent     NotificationType = "follow_request_sent"
	NotificationFollowAccepted        NotificationType = "follow_accepted"
	NotificationLike                  NotificationType = "like"
	NotificationComment               NotificationType = "comment"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationFollow, NotificationFollowRequestReceived, NotificationFollowRequestSent,
		NotificationFollowAccepted, NotificationLike, NotificationComment:
		return true
	}
	return false
}

// Notification is an append-only ledger entry addressed to RecipientID.
// Status is only set for follow_request_received and mirrors the edge in FollowID.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index:idx_notifications_recipient,priority:1" json:"recipient_id"`
	SenderID    uint             `gorm:"not null" json:"sender_id"`
	Type        NotificationType `gorm:"type:varchar(32);not null" json:"notification_type"`
	Status      *FollowStatus    `gorm:"type:varchar(20)" json:"status,omitempty"`
	FollowID    *uint            `json:"-"`
	PostID      *uint            `json:"post_id,omitempty"`
	CommentID   *uint            `json:"comment_id,omitempty"`
	Content     string           `json:"content,omitempty"`
	IsRead      bool             `gorm:"not null;default:false;index:idx_notifications_recipient,priority:2" json:"is_read"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`

	Recipient User `gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	Sender    User `gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
}

// Actionable reports whether the recipient can still accept or reject it.
func (n Notification) Actionable() bool {
	return n.Type == NotificationFollowRequestReceived && n.Status != nil && *n.Status == FollowPending
}
