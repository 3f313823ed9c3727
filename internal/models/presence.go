package models

import "time"

// Presence tracks liveness separately from the User identity row so that
// connect/disconnect churn never contends with profile updates.
type Presence struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	UserID   uint      `json:"user_id" gorm:"uniqueIndex"`
	IsOnline bool      `json:"is_online" gorm:"default:false"`
	LastSeen time.Time `json:"last_seen"`
}

// DeviceToken links a user to a mobile push token for the FCM sink.
type DeviceToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Token     string    `json:"token" gorm:"size:255;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterDeviceRequest defines the request body for registering a push token
type RegisterDeviceRequest struct {
	Token string `json:"token" validate:"required,max=255"`
}

// TypingRequest defines the request body for the typing-indicator relay
type TypingRequest struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
	IsTyping   bool `json:"is_typing"`
}
