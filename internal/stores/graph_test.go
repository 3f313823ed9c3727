package stores

import (
	"context"
	"testing"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/storeerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRequestFriendship(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	req, err := f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipPending, req.Status)

	rows := notificationsFor(t, f.db, bob.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotificationFriendRequest, rows[0].Kind)
	assert.Equal(t, alice.ID, rows[0].ActorID)
}

func TestRequestFriendshipSelf(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")

	_, err := f.graph.RequestFriendship(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, storeerr.ErrInvalidOperation)
}

func TestRequestFriendshipUnknownTarget(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")

	_, err := f.graph.RequestFriendship(context.Background(), alice.ID, 9999)
	assert.ErrorIs(t, err, storeerr.ErrNotFound)
}

func TestRequestFriendshipConflictsBothDirections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	_, err := f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, storeerr.ErrConflict)

	// The reverse direction conflicts too.
	_, err = f.graph.RequestFriendship(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, storeerr.ErrConflict)
}

func TestFriendRequestPairUniqueIndex(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	require.NoError(t, f.db.Create(&models.FriendRequest{
		SenderID: alice.ID, ReceiverID: bob.ID, Status: models.FriendshipPending,
	}).Error)

	// The reversed direction normalizes to the same pair and collides on the
	// unique index, independent of the store's existence check.
	err := f.db.Create(&models.FriendRequest{
		SenderID: bob.ID, ReceiverID: alice.ID, Status: models.FriendshipPending,
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, f.db.Model(&models.FriendRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAcceptFriendship(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	req, err := f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, f.graph.AcceptFriendship(ctx, req.ID, bob.ID))

	isFriend, err := f.graph.IsFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isFriend)

	// Follow edges exist in both directions.
	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		following, err := f.graph.IsFollowing(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, following)
	}

	rows := notificationsFor(t, f.db, alice.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotificationFriendAccept, rows[0].Kind)
}

func TestAcceptFriendshipOnlyReceiver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	req, err := f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	err = f.graph.AcceptFriendship(ctx, req.ID, alice.ID)
	assert.ErrorIs(t, err, storeerr.ErrUnauthorized)
}

func TestAcceptFriendshipAlreadyResolved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	req, err := f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, f.graph.AcceptFriendship(ctx, req.ID, bob.ID))

	// A second accept finds the request no longer pending.
	err = f.graph.AcceptFriendship(ctx, req.ID, bob.ID)
	assert.ErrorIs(t, err, storeerr.ErrNotFound)

	// Still exactly one follow edge per direction.
	var count int64
	require.NoError(t, f.db.Model(&models.Follow{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRejectFriendship(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	req, err := f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, f.graph.RejectFriendship(ctx, req.ID, bob.ID))

	pending, err := f.graph.PendingRequestsFor(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Rejection clears the slate, so a fresh request is allowed.
	_, err = f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
}

func TestFollowIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	require.NoError(t, f.graph.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, f.graph.Follow(ctx, alice.ID, bob.ID))

	count, err := f.graph.FollowerCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Only the first follow notifies.
	assert.Len(t, notificationsFor(t, f.db, bob.ID), 1)
}

func TestFollowSelf(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")

	err := f.graph.Follow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, storeerr.ErrInvalidOperation)
}

func TestUnfollowAbsentEdge(t *testing.T) {
	f := newFixture(t)
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	assert.NoError(t, f.graph.Unfollow(context.Background(), alice.ID, bob.ID))
}

func TestUnfriend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	req, err := f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, f.graph.AcceptFriendship(ctx, req.ID, bob.ID))

	require.NoError(t, f.graph.Unfriend(ctx, alice.ID, bob.ID))

	isFriend, err := f.graph.IsFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, isFriend)

	var follows int64
	require.NoError(t, f.db.Model(&models.Follow{}).Count(&follows).Error)
	assert.Zero(t, follows)
}

func TestFriendsOf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	carol := createUser(t, f.db, "carol")

	// alice -> bob accepted, carol -> alice accepted.
	req, err := f.graph.RequestFriendship(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, f.graph.AcceptFriendship(ctx, req.ID, bob.ID))

	req, err = f.graph.RequestFriendship(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	require.NoError(t, f.graph.AcceptFriendship(ctx, req.ID, alice.ID))

	friends, err := f.graph.FriendsOf(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)

	names := []string{friends[0].Username, friends[1].Username}
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)
}

func TestFollowingIDsOf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	carol := createUser(t, f.db, "carol")

	require.NoError(t, f.graph.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, f.graph.Follow(ctx, alice.ID, carol.ID))

	ids, err := f.graph.FollowingIDsOf(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{bob.ID, carol.ID}, ids)
}
