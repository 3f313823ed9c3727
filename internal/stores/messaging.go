package stores

import (
	"context"
	"fmt"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/notify"
	"github.com/socialite-app/backend/internal/realtime"
	"github.com/socialite-app/backend/internal/sanitize"
	"github.com/socialite-app/backend/internal/storeerr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessagingStore owns direct messages. Conversations are derived from the
// message table on every read.
type MessagingStore struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
	sink       realtime.Sink
	logger     *zap.Logger
}

// NewMessagingStore creates a new MessagingStore
func NewMessagingStore(db *gorm.DB, dispatcher *notify.Dispatcher, sink realtime.Sink, logger *zap.Logger) *MessagingStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessagingStore{db: db, dispatcher: dispatcher, sink: sink, logger: logger}
}

// SendMessage persists the message, pushes it at the receiver's sessions and
// records a notification. The push may be dropped; the row may not.
func (s *MessagingStore) SendMessage(ctx context.Context, senderID, receiverID uint, content, image string) (*models.Message, error) {
	if senderID == receiverID {
		return nil, fmt.Errorf("cannot message yourself: %w", storeerr.ErrInvalidOperation)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", receiverID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("user %d: %w", receiverID, storeerr.ErrNotFound)
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    sanitize.Content(content),
		Image:      image,
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}

	if s.sink != nil {
		if err := s.sink.Push(ctx, receiverID, "new_message", msg); err != nil {
			s.logger.Warn("message push dropped",
				zap.Uint("receiver_id", receiverID),
				zap.Uint("message_id", msg.ID),
				zap.Error(err))
		}
	}

	if err := s.dispatcher.Notify(ctx, receiverID, senderID,
		models.NotificationMessage, "sent you a message",
		fmt.Sprintf("/messages/%d", senderID)); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns the full history between the acting user and the
// counterpart, oldest first. Viewing marks every message from the counterpart
// as read.
func (s *MessagingStore) ListMessages(ctx context.Context, actingUserID, counterpartID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			actingUserID, counterpartID, counterpartID, actingUserID).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", counterpartID, actingUserID, false).
		Update("is_read", true).Error; err != nil {
		return nil, err
	}
	for i := range messages {
		if messages[i].SenderID == counterpartID {
			messages[i].IsRead = true
		}
	}
	return messages, nil
}

// ListConversations groups the user's messages by counterpart, keeps the most
// recent message per counterpart, orders by that recency and reports unread
// counts. Messages sent by the user are never "unread" for them.
func (s *MessagingStore) ListConversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").Order("id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	latest := make(map[uint]models.Message)
	unread := make(map[uint]int64)
	var order []uint
	for _, m := range messages {
		counterpart := m.SenderID
		if counterpart == userID {
			counterpart = m.ReceiverID
		}
		if _, seen := latest[counterpart]; !seen {
			latest[counterpart] = m
			order = append(order, counterpart)
		}
		if m.SenderID == counterpart && !m.IsRead {
			unread[counterpart]++
		}
	}

	if len(order) == 0 {
		return []models.Conversation{}, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", order).Find(&users).Error; err != nil {
		return nil, err
	}
	userByID := make(map[uint]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	var presences []models.Presence
	if err := s.db.WithContext(ctx).Where("user_id IN ?", order).Find(&presences).Error; err != nil {
		return nil, err
	}
	online := make(map[uint]bool, len(presences))
	for _, p := range presences {
		online[p.UserID] = p.IsOnline
	}

	conversations := make([]models.Conversation, 0, len(order))
	for _, counterpart := range order {
		u := userByID[counterpart]
		conversations = append(conversations, models.Conversation{
			User:        u.ToCompact(),
			IsOnline:    online[counterpart],
			LastMessage: latest[counterpart],
			UnreadCount: unread[counterpart],
		})
	}
	// messages came back newest-first, so first-seen order is recency order
	return conversations, nil
}
