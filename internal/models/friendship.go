package models

import (
	"time"

	"gorm.io/gorm"
)

// Friendship statuses. A rejected request is deleted, not kept around.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// FriendRequest tracks a mutual-relationship proposal, distinct from the
// directed Follow edge. The normalized pair columns carry a unique index so
// the database itself holds the at-most-one-row-per-unordered-pair invariant;
// the direction lives in SenderID/ReceiverID.
type FriendRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index"`
	ReceiverID uint      `json:"receiver_id" gorm:"index"`
	PairLowID  uint      `json:"-" gorm:"uniqueIndex:idx_friend_request_pair"`
	PairHighID uint      `json:"-" gorm:"uniqueIndex:idx_friend_request_pair"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate fills the normalized pair columns from the directed endpoints.
func (r *FriendRequest) BeforeCreate(*gorm.DB) error {
	r.PairLowID, r.PairHighID = r.SenderID, r.ReceiverID
	if r.PairLowID > r.PairHighID {
		r.PairLowID, r.PairHighID = r.PairHighID, r.PairLowID
	}
	return nil
}

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}
