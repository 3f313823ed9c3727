package models

import "time"

// Message is a direct message between two users. Conversations are derived
// from the message table, never stored.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index"`
	ReceiverID uint      `json:"receiver_id" gorm:"index"`
	Content    string    `json:"content"`
	Image      string    `json:"image" gorm:"size:200"`
	IsRead     bool      `json:"is_read" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=1"`
	Image      string `json:"image,omitempty" validate:"omitempty,max=200"`
}

// Conversation summarizes the message history with one counterpart.
type Conversation struct {
	User        UserCompact `json:"user"`
	IsOnline    bool        `json:"is_online"`
	LastMessage Message     `json:"last_message"`
	UnreadCount int64       `json:"unread_count"`
}
