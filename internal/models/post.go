package models

import "time"

// Post visibility scopes.
const (
	PrivacyPublic  = "public"
	PrivacyFriends = "friends"
	PrivacyPrivate = "private"
)

// Post is the content unit. Media fields hold references handed out by the
// media storage collaborator, never raw bytes.
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AuthorID    uint      `json:"author_id" gorm:"index"`
	Content     string    `json:"content"`
	Images      []string  `json:"images" gorm:"serializer:json"`
	Video       string    `json:"video" gorm:"size:200"`
	Location    string    `json:"location" gorm:"size:200"`
	Feeling     string    `json:"feeling" gorm:"size:100"`
	TaggedUsers []uint    `json:"tagged_users" gorm:"serializer:json"`
	Privacy     string    `json:"privacy" gorm:"type:varchar(20);default:'public'"`
	IsEdited    bool      `json:"is_edited" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content     string   `json:"content" validate:"required,min=1"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,max=200"`
	Video       string   `json:"video,omitempty" validate:"omitempty,max=200"`
	Location    string   `json:"location,omitempty" validate:"omitempty,max=200"`
	Feeling     string   `json:"feeling,omitempty" validate:"omitempty,max=100"`
	TaggedUsers []uint   `json:"tagged_users,omitempty"`
	Privacy     string   `json:"privacy,omitempty" validate:"omitempty,oneof=public friends private"`
}

// UpdatePostRequest defines the request body for editing an existing post
type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
