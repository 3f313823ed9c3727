package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/realtime"
	"github.com/socialite-app/backend/internal/storeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))
	return db
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	db := openTestDB(t)
	sink := realtime.NewMemorySink()
	d := NewDispatcher(db, sink, nil)

	err := d.Notify(context.Background(), 2, 1, models.NotificationLike, "reacted like to your post", "/post/7")
	require.NoError(t, err)

	rows, err := d.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotificationLike, rows[0].Kind)
	assert.False(t, rows[0].IsRead)

	events := sink.EventsFor(2)
	require.Len(t, events, 1)
	assert.Equal(t, "new_notification", events[0].Event)
}

func TestNotifySuppressesSelf(t *testing.T) {
	db := openTestDB(t)
	sink := realtime.NewMemorySink()
	d := NewDispatcher(db, sink, nil)

	require.NoError(t, d.Notify(context.Background(), 1, 1, models.NotificationLike, "reacted like to your post", "/post/7"))

	rows, err := d.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, sink.Events())
}

func TestNotifySwallowsPushFailure(t *testing.T) {
	db := openTestDB(t)
	sink := realtime.NewMemorySink()
	sink.Fail = assert.AnError
	d := NewDispatcher(db, sink, nil)

	err := d.Notify(context.Background(), 2, 1, models.NotificationFollow, "started following you", "/profile/1")
	require.NoError(t, err)

	// The row is there even though the push was dropped.
	count, err := d.UnreadCount(context.Background(), 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestListCapped(t *testing.T) {
	db := openTestDB(t)
	d := NewDispatcher(db, nil, nil)
	ctx := context.Background()

	for i := 0; i < listLimit+10; i++ {
		require.NoError(t, d.Notify(ctx, 2, 1, models.NotificationLike, "reacted like to your post", "/post/7"))
	}

	rows, err := d.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, listLimit)

	// Newest first.
	assert.Greater(t, rows[0].ID, rows[1].ID)
}

func TestMarkRead(t *testing.T) {
	db := openTestDB(t)
	d := NewDispatcher(db, nil, nil)
	ctx := context.Background()

	require.NoError(t, d.Notify(ctx, 2, 1, models.NotificationComment, "commented on your post", "/post/7"))
	rows, err := d.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Someone else's notification may not be marked.
	err = d.MarkRead(ctx, rows[0].ID, 3)
	assert.ErrorIs(t, err, storeerr.ErrUnauthorized)

	err = d.MarkRead(ctx, 9999, 2)
	assert.ErrorIs(t, err, storeerr.ErrNotFound)

	require.NoError(t, d.MarkRead(ctx, rows[0].ID, 2))
	count, err := d.UnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAllRead(t *testing.T) {
	db := openTestDB(t)
	d := NewDispatcher(db, nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, d.Notify(ctx, 2, 1, models.NotificationLike, "reacted like to your post", "/post/7"))
	}
	require.NoError(t, d.MarkAllRead(ctx, 2))

	count, err := d.UnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, count)
}
