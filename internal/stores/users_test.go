package stores

import (
	"context"
	"testing"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/storeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDefaultsAndConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, f.users.Create(ctx, user))
	assert.Equal(t, models.DefaultPrivacySettings(), user.PrivacySettings)
	assert.True(t, user.NotificationSettings.Messages)

	dup := &models.User{Username: "alice", Email: "other@example.com", Password: "hashed"}
	err := f.users.Create(ctx, dup)
	assert.ErrorIs(t, err, storeerr.ErrConflict)
}

func TestUpdateProfilePartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")

	bio := "hello <script>bad</script>world"
	location := "Lisbon"
	updated, err := f.users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{
		Bio:      &bio,
		Location: &location,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", updated.Location)
	assert.NotContains(t, updated.Bio, "<script>")
	// Untouched fields keep their values.
	assert.Equal(t, "alice", updated.Username)
}

func TestSearchUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	bob.FirstName = "Alicia"
	require.NoError(t, f.db.Save(bob).Error)
	createUser(t, f.db, "carol")

	users, err := f.users.Search(ctx, "alic")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = f.users.Search(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, users)
}
