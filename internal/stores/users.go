package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/sanitize"
	"github.com/socialite-app/backend/internal/storeerr"
	"gorm.io/gorm"
)

// UserStore owns identity rows. Users are never hard-deleted here; the
// lifecycle is registration plus profile mutation.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a user. Duplicate usernames or emails conflict.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	user.PrivacySettings = models.DefaultPrivacySettings()
	user.NotificationSettings = models.DefaultNotificationSettings()
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("username or email already taken: %w", storeerr.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID returns a user by id.
func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user %d: %w", id, storeerr.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns a user by email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s: %w", email, storeerr.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields of the request to the user's row.
func (s *UserStore) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = sanitize.Content(*req.Bio)
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}
	if req.CoverPhoto != nil {
		user.CoverPhoto = *req.CoverPhoto
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Website != nil {
		user.Website = *req.Website
	}
	if req.Work != nil {
		user.Work = *req.Work
	}
	if req.Education != nil {
		user.Education = *req.Education
	}
	if req.Privacy != nil {
		user.PrivacySettings = *req.Privacy
	}
	if req.Notifications != nil {
		user.NotificationSettings = *req.Notifications
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Search matches users by username or name fragment, capped at 20.
func (s *UserStore) Search(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := s.db.WithContext(ctx).
		Where("username LIKE ? OR first_name LIKE ? OR last_name LIKE ?", pattern, pattern, pattern).
		Limit(20).
		Find(&users).Error
	return users, err
}
