package stores

import (
	"context"
	"testing"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/storeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendMessage(t *testing.T, f *fixture, senderID, receiverID uint, content string) *models.Message {
	t.Helper()
	msg, err := f.messaging.SendMessage(context.Background(), senderID, receiverID, content, "")
	require.NoError(t, err)
	return msg
}

func TestSendMessage(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	msg := sendMessage(t, f, alice.ID, bob.ID, "hey bob")
	assert.False(t, msg.IsRead)

	// The receiver gets both a live push and a persisted notification.
	events := f.sink.EventsFor(bob.ID)
	require.NotEmpty(t, events)
	assert.Equal(t, "new_message", events[0].Event)

	rows := notificationsFor(t, f.db, bob.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotificationMessage, rows[0].Kind)
}

func TestSendMessageSelf(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")

	_, err := f.messaging.SendMessage(context.Background(), alice.ID, alice.ID, "note to self", "")
	assert.ErrorIs(t, err, storeerr.ErrInvalidOperation)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")

	_, err := f.messaging.SendMessage(context.Background(), alice.ID, 9999, "hello?", "")
	assert.ErrorIs(t, err, storeerr.ErrNotFound)
}

func TestSendMessageSurvivesPushFailure(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	f.sink.Fail = assert.AnError

	msg, err := f.messaging.SendMessage(context.Background(), alice.ID, bob.ID, "still delivered", "")
	require.NoError(t, err)

	var stored models.Message
	require.NoError(t, f.db.First(&stored, msg.ID).Error)
	assert.Equal(t, "still delivered", stored.Content)
}

func TestListMessagesMarksRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	sendMessage(t, f, alice.ID, bob.ID, "one")
	sendMessage(t, f, bob.ID, alice.ID, "two")
	sendMessage(t, f, alice.ID, bob.ID, "three")

	// Bob opens the thread: alice's messages flip to read, his own do not
	// change state for alice.
	messages, err := f.messaging.ListMessages(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"one", "two", "three"},
		[]string{messages[0].Content, messages[1].Content, messages[2].Content})

	for _, m := range messages {
		if m.SenderID == alice.ID {
			assert.True(t, m.IsRead)
		}
	}

	var unread int64
	require.NoError(t, f.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", bob.ID, false).
		Count(&unread).Error)
	assert.Zero(t, unread)

	// Bob's message to alice is still unread until she opens the thread.
	require.NoError(t, f.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", alice.ID, false).
		Count(&unread).Error)
	assert.EqualValues(t, 1, unread)
}

func TestListConversations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	carol := createUser(t, f.db, "carol")

	sendMessage(t, f, bob.ID, alice.ID, "from bob")
	sendMessage(t, f, carol.ID, alice.ID, "from carol 1")
	sendMessage(t, f, carol.ID, alice.ID, "from carol 2")

	require.NoError(t, f.presence.Connect(ctx, carol.ID))

	conversations, err := f.messaging.ListConversations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// Most recently active counterpart first.
	assert.Equal(t, "carol", conversations[0].User.Username)
	assert.Equal(t, "from carol 2", conversations[0].LastMessage.Content)
	assert.EqualValues(t, 2, conversations[0].UnreadCount)
	assert.True(t, conversations[0].IsOnline)

	assert.Equal(t, "bob", conversations[1].User.Username)
	assert.EqualValues(t, 1, conversations[1].UnreadCount)
	assert.False(t, conversations[1].IsOnline)
}

func TestListConversationsEmpty(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")

	conversations, err := f.messaging.ListConversations(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, conversations)
}
