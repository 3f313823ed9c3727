package models

import "time"

// Reaction kinds accepted on posts.
const (
	ReactionLike  = "like"
	ReactionLove  = "love"
	ReactionHaha  = "haha"
	ReactionWow   = "wow"
	ReactionSad   = "sad"
	ReactionAngry = "angry"
)

// Reaction is the (user, post) pair with a kind. The unique pair index is the
// compare-and-swap key for concurrent toggles.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_reaction"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_reaction"`
	Kind      string    `json:"kind" gorm:"type:varchar(20);default:'like'"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentReaction is a like-style toggle on a comment.
type CommentReaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_comment_reaction"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_user_comment_reaction"`
	Kind      string    `json:"kind" gorm:"type:varchar(20);default:'like'"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactRequest defines the request body for reacting to a post or comment
type ReactRequest struct {
	Kind string `json:"kind" validate:"required,oneof=like love haha wow sad angry"`
}
