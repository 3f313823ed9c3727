package stores

import (
	"context"
	"time"

	"github.com/socialite-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PresenceStore tracks liveness and push-device registrations. It is the only
// writer of the presence table; identity rows are never touched on connect.
type PresenceStore struct {
	db *gorm.DB
}

// NewPresenceStore creates a new PresenceStore
func NewPresenceStore(db *gorm.DB) *PresenceStore {
	return &PresenceStore{db: db}
}

// Connect marks the user online.
func (s *PresenceStore) Connect(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"is_online": true, "last_seen": time.Now().UTC()}),
	}).Create(&models.Presence{UserID: userID, IsOnline: true, LastSeen: time.Now().UTC()}).Error
}

// Disconnect marks the user offline and stamps last-seen.
func (s *PresenceStore) Disconnect(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"is_online": false, "last_seen": time.Now().UTC()}),
	}).Create(&models.Presence{UserID: userID, IsOnline: false, LastSeen: time.Now().UTC()}).Error
}

// Get returns the user's presence row; a user never seen online gets a zero row.
func (s *PresenceStore) Get(ctx context.Context, userID uint) (*models.Presence, error) {
	var p models.Presence
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return &models.Presence{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RegisterDevice stores a push token for the user. Re-registering the same
// token moves it to the newest owner.
func (s *PresenceStore) RegisterDevice(ctx context.Context, userID uint, token string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"user_id": userID}),
	}).Create(&models.DeviceToken{UserID: userID, Token: token}).Error
}
