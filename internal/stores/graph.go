// Package stores owns the persistent state of the social core. Each store
// wraps one slice of the relational schema and keeps every multi-step
// mutation inside a single transaction.
package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/notify"
	"github.com/socialite-app/backend/internal/storeerr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GraphStore owns the directed follow relation and the friendship-request
// lifecycle. Follow edges are created and removed here and nowhere else.
type GraphStore struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
}

// NewGraphStore creates a new GraphStore
func NewGraphStore(db *gorm.DB, dispatcher *notify.Dispatcher) *GraphStore {
	return &GraphStore{db: db, dispatcher: dispatcher}
}

// RequestFriendship creates a pending request from initiator to target.
// At most one request exists per unordered pair, regardless of direction.
func (s *GraphStore) RequestFriendship(ctx context.Context, initiatorID, targetID uint) (*models.FriendRequest, error) {
	if initiatorID == targetID {
		return nil, fmt.Errorf("cannot send a friend request to yourself: %w", storeerr.ErrInvalidOperation)
	}
	if err := s.userExists(ctx, targetID); err != nil {
		return nil, err
	}

	req := &models.FriendRequest{SenderID: initiatorID, ReceiverID: targetID, Status: models.FriendshipPending}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.FriendRequest
		err := tx.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			initiatorID, targetID, targetID, initiatorID).First(&existing).Error
		if err == nil {
			return fmt.Errorf("a friend request already exists between users %d and %d: %w",
				initiatorID, targetID, storeerr.ErrConflict)
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		// The unique pair index backs the check above: a concurrent request
		// between the same pair loses here instead of committing a second row.
		if err := tx.Create(req).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("a friend request already exists between users %d and %d: %w",
					initiatorID, targetID, storeerr.ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.dispatcher.Notify(ctx, targetID, initiatorID,
		models.NotificationFriendRequest, "sent you a friend request",
		fmt.Sprintf("/profile/%d", initiatorID)); err != nil {
		return nil, err
	}
	return req, nil
}

// AcceptFriendship marks the request accepted and creates follow edges in
// both directions, all in one transaction. The status update is conditional
// on the request still being pending, so of two concurrent accepts exactly
// one wins; the loser observes ErrNotFound.
func (s *GraphStore) AcceptFriendship(ctx context.Context, requestID, actingUserID uint) error {
	var req models.FriendRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, requestID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("friend request %d: %w", requestID, storeerr.ErrNotFound)
			}
			return err
		}
		if req.ReceiverID != actingUserID {
			return fmt.Errorf("only the receiver may accept friend request %d: %w", requestID, storeerr.ErrUnauthorized)
		}

		res := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", requestID, models.FriendshipPending).
			Update("status", models.FriendshipAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("friend request %d already resolved: %w", requestID, storeerr.ErrNotFound)
		}

		edges := []models.Follow{
			{FollowerID: req.SenderID, FollowedID: req.ReceiverID},
			{FollowerID: req.ReceiverID, FollowedID: req.SenderID},
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followed_id"}},
			DoNothing: true,
		}).Create(&edges).Error
	})
	if err != nil {
		return err
	}

	return s.dispatcher.Notify(ctx, req.SenderID, actingUserID,
		models.NotificationFriendAccept, "accepted your friend request",
		fmt.Sprintf("/profile/%d", actingUserID))
}

// RejectFriendship deletes the request. Only the receiver may reject.
func (s *GraphStore) RejectFriendship(ctx context.Context, requestID, actingUserID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.FriendRequest
		if err := tx.First(&req, requestID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("friend request %d: %w", requestID, storeerr.ErrNotFound)
			}
			return err
		}
		if req.ReceiverID != actingUserID {
			return fmt.Errorf("only the receiver may reject friend request %d: %w", requestID, storeerr.ErrUnauthorized)
		}
		return tx.Delete(&models.FriendRequest{}, requestID).Error
	})
}

// Follow creates a directed edge from actor to target. Following someone you
// already follow is a no-op success; the notification fires only for a new edge.
func (s *GraphStore) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return fmt.Errorf("cannot follow yourself: %w", storeerr.ErrInvalidOperation)
	}
	if err := s.userExists(ctx, targetID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followed_id"}},
		DoNothing: true,
	}).Create(&models.Follow{FollowerID: actorID, FollowedID: targetID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	return s.dispatcher.Notify(ctx, targetID, actorID,
		models.NotificationFollow, "started following you",
		fmt.Sprintf("/profile/%d", actorID))
}

// Unfollow removes the directed edge. Removing an absent edge is a no-op.
func (s *GraphStore) Unfollow(ctx context.Context, actorID, targetID uint) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", actorID, targetID).
		Delete(&models.Follow{}).Error
}

// Unfriend removes the follow edges in both directions and any friendship
// record between the pair, whatever its status, in one transaction.
func (s *GraphStore) Unfriend(ctx context.Context, userA, userB uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("(follower_id = ? AND followed_id = ?) OR (follower_id = ? AND followed_id = ?)",
			userA, userB, userB, userA).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).Delete(&models.FriendRequest{}).Error
	})
}

// IsFriend reports whether an accepted request exists between the pair.
func (s *GraphStore) IsFriend(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("status = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			models.FriendshipAccepted, a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// IsFollowing reports whether a follows b.
func (s *GraphStore) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", a, b).
		Count(&count).Error
	return count > 0, err
}

// PendingRequestsFor returns the pending requests addressed to user, newest first.
func (s *GraphStore) PendingRequestsFor(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := s.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", userID, models.FriendshipPending).
		Order("created_at DESC").Order("id DESC").
		Find(&requests).Error
	return requests, err
}

// FriendsOf returns the users with an accepted friendship with userID.
func (s *GraphStore) FriendsOf(ctx context.Context, userID uint) ([]models.User, error) {
	sent := s.db.Table("friend_requests").Select("receiver_id").
		Where("sender_id = ? AND status = ?", userID, models.FriendshipAccepted)
	received := s.db.Table("friend_requests").Select("sender_id").
		Where("receiver_id = ? AND status = ?", userID, models.FriendshipAccepted)

	var friends []models.User
	err := s.db.WithContext(ctx).
		Where("id IN (?) OR id IN (?)", sent, received).
		Find(&friends).Error
	return friends, err
}

// FollowersOf returns the users following userID.
func (s *GraphStore) FollowersOf(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Where("id IN (?)",
		s.db.Table("follows").Select("follower_id").Where("followed_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// FollowingOf returns the users userID follows.
func (s *GraphStore) FollowingOf(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Where("id IN (?)",
		s.db.Table("follows").Select("followed_id").Where("follower_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// FollowingIDsOf returns just the ids userID follows. The feed and story
// stores use this to build the audience set.
func (s *GraphStore) FollowingIDsOf(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	return ids, err
}

// FollowerCount returns how many users follow userID.
func (s *GraphStore) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

// FollowingCount returns how many users userID follows.
func (s *GraphStore) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *GraphStore) userExists(ctx context.Context, userID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("user %d: %w", userID, storeerr.ErrNotFound)
	}
	return nil
}
