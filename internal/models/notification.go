package models

import "time"

// Notification kinds produced by the stores.
const (
	NotificationFriendRequest = "friend_request"
	NotificationFriendAccept  = "friend_accept"
	NotificationFollow        = "follow"
	NotificationLike          = "like"
	NotificationComment       = "comment"
	NotificationShare         = "share"
	NotificationTag           = "tag"
	NotificationMessage       = "message"
)

// Notification is an immutable event record for a recipient. Only the
// dispatcher creates rows; read state is the one mutable bit.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Kind        string    `json:"kind" gorm:"size:50;index"`
	Content     string    `json:"content"`
	Link        string    `json:"link" gorm:"size:200"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
