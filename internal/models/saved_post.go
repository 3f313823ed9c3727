package models

import "time"

// SavedPost is a bookmark. One save per (user, post) regardless of collection;
// the collection name is display metadata only.
type SavedPost struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_save"`
	PostID         uint      `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_save"`
	CollectionName string    `json:"collection_name" gorm:"size:100;default:'Saved Items'"`
	CreatedAt      time.Time `json:"created_at"`
}

// SavePostRequest defines the request body for saving a post
type SavePostRequest struct {
	CollectionName string `json:"collection_name,omitempty" validate:"omitempty,max=100"`
}
