package stores

import (
	"fmt"
	"strings"
	"testing"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/notify"
	"github.com/socialite-app/backend/internal/realtime"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB gives each test its own in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Follow{},
		&models.Post{},
		&models.Reaction{},
		&models.Comment{},
		&models.CommentReaction{},
		&models.Share{},
		&models.SavedPost{},
		&models.Message{},
		&models.Story{},
		&models.StoryView{},
		&models.Notification{},
		&models.Presence{},
		&models.DeviceToken{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// fixture bundles the stores over one database and a recording sink.
type fixture struct {
	db         *gorm.DB
	sink       *realtime.MemorySink
	dispatcher *notify.Dispatcher
	graph      *GraphStore
	content    *ContentStore
	feed       *FeedComposer
	messaging  *MessagingStore
	stories    *StoryStore
	presence   *PresenceStore
	users      *UserStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	sink := realtime.NewMemorySink()
	dispatcher := notify.NewDispatcher(db, sink, nil)
	graph := NewGraphStore(db, dispatcher)
	return &fixture{
		db:         db,
		sink:       sink,
		dispatcher: dispatcher,
		graph:      graph,
		content:    NewContentStore(db, dispatcher),
		feed:       NewFeedComposer(db, graph),
		messaging:  NewMessagingStore(db, dispatcher, sink, nil),
		stories:    NewStoryStore(db, graph),
		presence:   NewPresenceStore(db),
		users:      NewUserStore(db),
	}
}

// notificationsFor returns the persisted notifications addressed to a user.
func notificationsFor(t *testing.T, db *gorm.DB, recipientID uint) []models.Notification {
	t.Helper()
	var rows []models.Notification
	require.NoError(t, db.Where("recipient_id = ?", recipientID).Order("id ASC").Find(&rows).Error)
	return rows
}
