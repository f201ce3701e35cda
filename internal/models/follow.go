package models

import "time"

// FollowStatus defines the state of a follow edge.
type FollowStatus string

const (
	// FollowPending means the target is private and has not answered the request yet.
	FollowPending FollowStatus = "pending"

	// FollowAccepted is the only status the feed treats as an active follow.
	FollowAccepted FollowStatus = "accepted"

	// FollowRejected is terminal; the follower has to unfollow before asking again.
	FollowRejected FollowStatus = "rejected"

	// FollowCancelled never appears on an edge. It closes a follow_request_received whose
	// pending edge was removed by the follower.
	FollowCancelled FollowStatus = "cancelled"
)

// Valid reports whether s is an edge status.
func (s FollowStatus) Valid() bool {
	switch s {
	case FollowPending, FollowAccepted, FollowRejected:
		return true
	}
	return false
}

// Follow is a directed edge from FollowerID to FollowingID.
// The (FollowerID, FollowingID) pair is unique; unfollowing deletes the row.
type Follow struct {
	ID          uint         `gorm:"primaryKey"`
	FollowerID  uint         `gorm:"not null;uniqueIndex:idx_follows_pair,priority:1"`
	FollowingID uint         `gorm:"not null;uniqueIndex:idx_follows_pair,priority:2;index"`
	Status      FollowStatus `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Follower  User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Following User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// RelationshipState is how a (follower, following) pair looks from the outside.
type RelationshipState string

const (
	StateNone     RelationshipState = "NONE"
	StatePending  RelationshipState = "PENDING"
	StateActive   RelationshipState = "ACTIVE"
	StateRejected RelationshipState = "REJECTED"
)

// StateOf derives the relationship state from an edge, which may be nil.
func StateOf(edge *Follow) RelationshipState {
	if edge == nil {
		return StateNone
	}

	switch edge.Status {
	case FollowPending:
		return StatePending
	case FollowAccepted:
		return StateActive
	case FollowRejected:
		return StateRejected
	}
	return StateNone
}
