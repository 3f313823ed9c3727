package stores

import (
	"context"
	"testing"

	"github.com/socialite-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")

	// Never seen online yet.
	p, err := f.presence.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, p.IsOnline)
	assert.True(t, p.LastSeen.IsZero())

	require.NoError(t, f.presence.Connect(ctx, alice.ID))
	p, err = f.presence.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, p.IsOnline)

	require.NoError(t, f.presence.Disconnect(ctx, alice.ID))
	p, err = f.presence.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, p.IsOnline)
	assert.False(t, p.LastSeen.IsZero())

	// Reconnecting reuses the single presence row.
	require.NoError(t, f.presence.Connect(ctx, alice.ID))
	var count int64
	require.NoError(t, f.db.Model(&models.Presence{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterDeviceReassignsToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	require.NoError(t, f.presence.RegisterDevice(ctx, alice.ID, "token-1"))
	require.NoError(t, f.presence.RegisterDevice(ctx, bob.ID, "token-1"))

	var tokens []models.DeviceToken
	require.NoError(t, f.db.Find(&tokens).Error)
	require.Len(t, tokens, 1)
	assert.Equal(t, bob.ID, tokens[0].UserID)
}
