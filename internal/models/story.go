package models

import "time"

// Story is an ephemeral post-like unit. ExpiresAt is computed at creation from
// the requested duration and never recalculated.
type Story struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"index"`
	MediaType       string    `json:"media_type" gorm:"size:20"`
	MediaURL        string    `json:"media_url" gorm:"size:200"`
	Text            string    `json:"text"`
	BackgroundColor string    `json:"background_color" gorm:"size:20"`
	DurationHours   int       `json:"duration" gorm:"default:24"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
	ExpiresAt       time.Time `json:"expires_at" gorm:"index"`
}

// StoryView records that a viewer saw a story. The unique pair index makes
// RecordView idempotent.
type StoryView struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	StoryID  uint      `json:"story_id" gorm:"index;uniqueIndex:idx_story_viewer"`
	ViewerID uint      `json:"viewer_id" gorm:"index;uniqueIndex:idx_story_viewer"`
	SeenAt   time.Time `json:"seen_at"`
}

// CreateStoryRequest defines the request body for publishing a story
type CreateStoryRequest struct {
	MediaType       string `json:"media_type,omitempty" validate:"omitempty,oneof=text image video"`
	MediaURL        string `json:"media_url,omitempty" validate:"omitempty,max=200"`
	Text            string `json:"text,omitempty"`
	BackgroundColor string `json:"background_color,omitempty" validate:"omitempty,max=20"`
	DurationHours   int    `json:"duration,omitempty" validate:"omitempty,min=1,max=48"`
}

// StoryGroup is one author's active stories in a feed response.
type StoryGroup struct {
	User    UserCompact `json:"user"`
	Stories []Story     `json:"stories"`
}
