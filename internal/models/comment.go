package models

import "time"

// Comment belongs to a post, optionally to a parent comment. Threading is a
// single level deep: a reply's parent is always a top-level comment.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	Content   string    `json:"content"`
	Image     string    `json:"image" gorm:"size:200"`
	IsEdited  bool      `json:"is_edited" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	Image    string `json:"image,omitempty" validate:"omitempty,max=200"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
