package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/notify"
	"github.com/socialite-app/backend/internal/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.CommentReaction{},
		&models.Notification{},
	))
	return db
}

func TestGetCommentsMissingAuthorFallsBack(t *testing.T) {
	db := openHandlerDB(t)
	contentStore := stores.NewContentStore(db, notify.NewDispatcher(db, nil, nil))
	h := NewCommentHandler(contentStore, stores.NewUserStore(db))

	author := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, db.Create(author).Error)
	post := &models.Post{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, db.Create(post).Error)

	// One comment with a live author, one whose author row no longer exists.
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: author.ID, Content: "kept"}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: 9999, Content: "orphaned"}).Error)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(post.ID))

	require.NoError(t, h.GetComments(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"orphaned"`)
	assert.Contains(t, body, `"alice"`)
}
