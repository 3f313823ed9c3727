// Package notify persists notification events and fans them out to the
// presence sink. The write is the source of truth; the push is best effort.
package notify

import (
	"context"
	"fmt"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/realtime"
	"github.com/socialite-app/backend/internal/storeerr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// listLimit caps how many notifications a single listing returns.
const listLimit = 50

// Dispatcher records activity events and pushes them at their recipient.
type Dispatcher struct {
	db     *gorm.DB
	sink   realtime.Sink
	logger *zap.Logger
}

// NewDispatcher creates a Dispatcher. A nil sink disables pushes entirely.
func NewDispatcher(db *gorm.DB, sink realtime.Sink, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{db: db, sink: sink, logger: logger}
}

// Notify persists a notification row, then pushes it to the recipient's
// sessions. Self-notifications are suppressed. Sink failures are logged and
// swallowed: they must never roll back or block the persisted write.
func (d *Dispatcher) Notify(ctx context.Context, recipientID, actorID uint, kind, content, link string) error {
	if recipientID == actorID {
		return nil
	}

	n := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Kind:        kind,
		Content:     content,
		Link:        link,
	}
	if err := d.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("persisting notification: %w", err)
	}

	if d.sink != nil {
		if err := d.sink.Push(ctx, recipientID, "new_notification", n); err != nil {
			d.logger.Warn("notification push dropped",
				zap.Uint("recipient_id", recipientID),
				zap.String("kind", kind),
				zap.Error(err))
		}
	}
	return nil
}

// List returns the recipient's notifications newest-first, capped at 50.
func (d *Dispatcher) List(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := d.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Order("id DESC").
		Limit(listLimit).
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount returns how many unread notifications the recipient has.
func (d *Dispatcher) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips the read flag. Only the recipient may do so.
func (d *Dispatcher) MarkRead(ctx context.Context, notificationID, actingUserID uint) error {
	var n models.Notification
	if err := d.db.WithContext(ctx).First(&n, notificationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("notification %d: %w", notificationID, storeerr.ErrNotFound)
		}
		return err
	}
	if n.RecipientID != actingUserID {
		return fmt.Errorf("notification %d is not addressed to user %d: %w", notificationID, actingUserID, storeerr.ErrUnauthorized)
	}
	return d.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true).Error
}

// MarkAllRead flips every unread notification for the recipient.
func (d *Dispatcher) MarkAllRead(ctx context.Context, recipientID uint) error {
	return d.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}
