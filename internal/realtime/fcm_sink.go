package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/socialite-app/backend/internal/models"
	"gorm.io/gorm"
)

// FCMSink delivers events to a user's registered devices through Firebase
// Cloud Messaging. A user without tokens is a silent no-op.
type FCMSink struct {
	client *messaging.Client
	db     *gorm.DB
}

func NewFCMSink(client *messaging.Client, db *gorm.DB) *FCMSink {
	return &FCMSink{client: client, db: db}
}

func (s *FCMSink) Push(ctx context.Context, targetUserID uint, event string, payload any) error {
	var tokens []string
	if err := s.db.WithContext(ctx).Model(&models.DeviceToken{}).
		Where("user_id = ?", targetUserID).
		Pluck("token", &tokens).Error; err != nil {
		return fmt.Errorf("loading device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", event, err)
	}

	var last error
	for _, token := range tokens {
		_, err := s.client.Send(ctx, &messaging.Message{
			Token: token,
			Data:  map[string]string{"event": event, "payload": string(data)},
		})
		if err != nil {
			last = err
		}
	}
	return last
}
