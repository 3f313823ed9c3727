package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// PrivacySettings controls who can see what on a profile.
type PrivacySettings struct {
	Profile     string `json:"profile"`
	Posts       string `json:"posts"`
	FriendsList string `json:"friends_list"`
}

// NotificationSettings toggles notification categories per user.
type NotificationSettings struct {
	Likes          bool `json:"likes"`
	Comments       bool `json:"comments"`
	FriendRequests bool `json:"friend_requests"`
	Messages       bool `json:"messages"`
}

// DefaultPrivacySettings returns the settings assigned at registration.
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{Profile: "public", Posts: "friends", FriendsList: "friends"}
}

// DefaultNotificationSettings returns the settings assigned at registration.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Likes: true, Comments: true, FriendRequests: true, Messages: true}
}

// User is the identity anchor. Liveness lives in the Presence table, not here.
type User struct {
	ID                   uint                 `json:"id" gorm:"primaryKey"`
	Username             string               `json:"username" gorm:"size:80;uniqueIndex"`
	Email                string               `json:"email" gorm:"size:120;uniqueIndex"`
	Password             string               `json:"-" gorm:"size:200"` // bcrypt hash
	FirstName            string               `json:"first_name" gorm:"size:50"`
	LastName             string               `json:"last_name" gorm:"size:50"`
	Bio                  string               `json:"bio"`
	ProfilePicture       string               `json:"profile_picture" gorm:"size:200"`
	CoverPhoto           string               `json:"cover_photo" gorm:"size:200"`
	IsVerified           bool                 `json:"is_verified" gorm:"default:false"`
	Location             string               `json:"location" gorm:"size:100"`
	Website              string               `json:"website" gorm:"size:200"`
	Work                 string               `json:"work" gorm:"size:100"`
	Education            string               `json:"education" gorm:"size:100"`
	PrivacySettings      PrivacySettings      `json:"privacy_settings" gorm:"serializer:json"`
	NotificationSettings NotificationSettings `json:"notification_settings" gorm:"serializer:json"`
	CreatedAt            time.Time            `json:"created_at"`
}

// UserCompact is the author/sender shape embedded in list responses.
type UserCompact struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture"`
	IsVerified     bool   `json:"is_verified"`
}

// ToCompact projects a User into its compact response shape.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
		IsVerified:     u.IsVerified,
	}
}

// SignupRequest defines the request body for local registration
type SignupRequest struct {
	Username  string `json:"username" validate:"required,min=2,max=80"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"omitempty,max=50"`
	LastName  string `json:"last_name" validate:"omitempty,max=50"`
}

// SignInRequest defines the request body for local authentication
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	FirstName      *string               `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName       *string               `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Bio            *string               `json:"bio,omitempty"`
	ProfilePicture *string               `json:"profile_picture,omitempty" validate:"omitempty,max=200"`
	CoverPhoto     *string               `json:"cover_photo,omitempty" validate:"omitempty,max=200"`
	Location       *string               `json:"location,omitempty" validate:"omitempty,max=100"`
	Website        *string               `json:"website,omitempty" validate:"omitempty,max=200"`
	Work           *string               `json:"work,omitempty" validate:"omitempty,max=100"`
	Education      *string               `json:"education,omitempty" validate:"omitempty,max=100"`
	Privacy        *PrivacySettings      `json:"privacy_settings,omitempty"`
	Notifications  *NotificationSettings `json:"notification_settings,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
