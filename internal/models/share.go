package models

import "time"

// Share re-posts an existing post onto the sharing user's timeline.
type Share struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	PostID    uint      `json:"post_id" gorm:"index"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// ShareRequest defines the request body for sharing a post
type ShareRequest struct {
	Caption string `json:"caption,omitempty"`
}
