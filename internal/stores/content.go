package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/notify"
	"github.com/socialite-app/backend/internal/sanitize"
	"github.com/socialite-app/backend/internal/storeerr"
	"gorm.io/gorm"
)

// Reaction toggle outcomes.
const (
	ReactionAdded   = "added"
	ReactionRemoved = "removed"
	ReactionChanged = "changed"
)

// ReactionResult is what a toggle left behind. Kind is empty after a removal.
type ReactionResult struct {
	Outcome string `json:"outcome"`
	Kind    string `json:"kind,omitempty"`
}

// ContentStore owns posts, comments, reactions, shares and saved posts.
type ContentStore struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
}

// NewContentStore creates a new ContentStore
func NewContentStore(db *gorm.DB, dispatcher *notify.Dispatcher) *ContentStore {
	return &ContentStore{db: db, dispatcher: dispatcher}
}

// CreatePost persists a new post and notifies any tagged users.
func (s *ContentStore) CreatePost(ctx context.Context, authorID uint, req models.CreatePostRequest) (*models.Post, error) {
	privacy := req.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}
	post := &models.Post{
		AuthorID:    authorID,
		Content:     sanitize.Content(req.Content),
		Images:      req.Images,
		Video:       req.Video,
		Location:    req.Location,
		Feeling:     req.Feeling,
		TaggedUsers: req.TaggedUsers,
		Privacy:     privacy,
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}

	for _, taggedID := range req.TaggedUsers {
		if err := s.dispatcher.Notify(ctx, taggedID, authorID,
			models.NotificationTag, "tagged you in a post",
			fmt.Sprintf("/post/%d", post.ID)); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// GetPost returns one post by id.
func (s *ContentStore) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("post %d: %w", postID, storeerr.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// PostsByIDs returns the posts for a set of ids, keyed by id.
func (s *ContentStore) PostsByIDs(ctx context.Context, ids []uint) (map[uint]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		out[p.ID] = p
	}
	return out, nil
}

// EditPost replaces the body. Author-only; sets the edited flag.
func (s *ContentStore) EditPost(ctx context.Context, postID, actingUserID uint, content string) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actingUserID {
		return nil, fmt.Errorf("only the author may edit post %d: %w", postID, storeerr.ErrUnauthorized)
	}
	post.Content = sanitize.Content(content)
	post.IsEdited = true
	if err := s.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and cascades to its comments (and their
// reactions), reactions and shares in one transaction. Author-only.
func (s *ContentStore) DeletePost(ctx context.Context, postID, actingUserID uint) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actingUserID {
		return fmt.Errorf("only the author may delete post %d: %w", postID, storeerr.ErrUnauthorized)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", postID)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Share{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}

// ToggleReaction is the three-way branch on the unique (user, post) key:
// no prior reaction inserts, the same kind removes, a different kind replaces.
// Concurrent toggles serialize on the unique index, never duplicating rows.
func (s *ContentStore) ToggleReaction(ctx context.Context, userID, postID uint, kind string) (*ReactionResult, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	var result ReactionResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			createErr := tx.Create(&models.Reaction{UserID: userID, PostID: postID, Kind: kind}).Error
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				// Lost the insert race; land on the replace branch instead.
				result = ReactionResult{Outcome: ReactionChanged, Kind: kind}
				return tx.Model(&models.Reaction{}).
					Where("user_id = ? AND post_id = ?", userID, postID).
					Update("kind", kind).Error
			}
			result = ReactionResult{Outcome: ReactionAdded, Kind: kind}
			return createErr
		case err != nil:
			return err
		case existing.Kind == kind:
			result = ReactionResult{Outcome: ReactionRemoved}
			return tx.Delete(&models.Reaction{}, existing.ID).Error
		default:
			result = ReactionResult{Outcome: ReactionChanged, Kind: kind}
			return tx.Model(&models.Reaction{}).Where("id = ?", existing.ID).Update("kind", kind).Error
		}
	})
	if err != nil {
		return nil, err
	}

	if result.Outcome == ReactionAdded {
		if err := s.dispatcher.Notify(ctx, post.AuthorID, userID,
			models.NotificationLike, fmt.Sprintf("reacted %s to your post", kind),
			fmt.Sprintf("/post/%d", postID)); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// ReactionCounts returns the per-kind reaction tally for a post.
func (s *ContentStore) ReactionCounts(ctx context.Context, postID uint) (map[string]int64, error) {
	var rows []struct {
		Kind  string
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&models.Reaction{}).
		Select("kind, count(*) as count").
		Where("post_id = ?", postID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Kind] = r.Count
	}
	return counts, nil
}

// UserReaction returns the acting user's reaction kind on a post, or "" if none.
func (s *ContentStore) UserReaction(ctx context.Context, userID, postID uint) (string, error) {
	var reaction models.Reaction
	err := s.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).First(&reaction).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return reaction.Kind, nil
}

// CreateComment adds a comment, optionally as a single-level reply. The
// parent must be a top-level comment on the same post.
func (s *ContentStore) CreateComment(ctx context.Context, userID, postID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		var parent models.Comment
		if err := s.db.WithContext(ctx).First(&parent, *req.ParentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("parent comment %d: %w", *req.ParentID, storeerr.ErrNotFound)
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("parent comment %d belongs to another post: %w", *req.ParentID, storeerr.ErrInvalidOperation)
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("comment threading is one level deep: %w", storeerr.ErrInvalidOperation)
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  sanitize.Content(req.Content),
		Image:    req.Image,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}

	preview := comment.Content
	if runes := []rune(preview); len(runes) > 50 {
		preview = string(runes[:50]) + "..."
	}
	if err := s.dispatcher.Notify(ctx, post.AuthorID, userID,
		models.NotificationComment, fmt.Sprintf("commented on your post: %q", preview),
		fmt.Sprintf("/post/%d", postID)); err != nil {
		return nil, err
	}
	return comment, nil
}

// EditComment replaces the body. Author-only; sets the edited flag.
func (s *ContentStore) EditComment(ctx context.Context, commentID, actingUserID uint, content string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("comment %d: %w", commentID, storeerr.ErrNotFound)
		}
		return nil, err
	}
	if comment.UserID != actingUserID {
		return nil, fmt.Errorf("only the author may edit comment %d: %w", commentID, storeerr.ErrUnauthorized)
	}
	comment.Content = sanitize.Content(content)
	comment.IsEdited = true
	if err := s.db.WithContext(ctx).Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment, its replies and the reactions on all of
// them in one transaction. Author-only.
func (s *ContentStore) DeleteComment(ctx context.Context, commentID, actingUserID uint) error {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("comment %d: %w", commentID, storeerr.ErrNotFound)
		}
		return err
	}
	if comment.UserID != actingUserID {
		return fmt.Errorf("only the author may delete comment %d: %w", commentID, storeerr.ErrUnauthorized)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ? OR comment_id IN (?)",
			commentID, tx.Model(&models.Comment{}).Select("id").Where("parent_id = ?", commentID),
		).Delete(&models.CommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", commentID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
}

// CommentsOf returns the top-level comments of a post, newest first.
func (s *ContentStore) CommentsOf(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	return comments, err
}

// RepliesOf returns the replies of a comment, oldest first.
func (s *ContentStore) RepliesOf(ctx context.Context, commentID uint) ([]models.Comment, error) {
	var replies []models.Comment
	err := s.db.WithContext(ctx).
		Where("parent_id = ?", commentID).
		Order("created_at ASC").Order("id ASC").
		Find(&replies).Error
	return replies, err
}

// ToggleCommentReaction toggles a reaction on a comment with the same
// three-way branch as post reactions. Comment reactions do not notify.
func (s *ContentStore) ToggleCommentReaction(ctx context.Context, userID, commentID uint, kind string) (*ReactionResult, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("comment %d: %w", commentID, storeerr.ErrNotFound)
		}
		return nil, err
	}

	var result ReactionResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CommentReaction
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			result = ReactionResult{Outcome: ReactionAdded, Kind: kind}
			return tx.Create(&models.CommentReaction{UserID: userID, CommentID: commentID, Kind: kind}).Error
		case err != nil:
			return err
		case existing.Kind == kind:
			result = ReactionResult{Outcome: ReactionRemoved}
			return tx.Delete(&models.CommentReaction{}, existing.ID).Error
		default:
			result = ReactionResult{Outcome: ReactionChanged, Kind: kind}
			return tx.Model(&models.CommentReaction{}).Where("id = ?", existing.ID).Update("kind", kind).Error
		}
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SharePost re-posts onto the sharing user's timeline and notifies the author.
func (s *ContentStore) SharePost(ctx context.Context, userID, postID uint, caption string) (*models.Share, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	share := &models.Share{UserID: userID, PostID: postID, Caption: sanitize.Content(caption)}
	if err := s.db.WithContext(ctx).Create(share).Error; err != nil {
		return nil, err
	}

	if err := s.dispatcher.Notify(ctx, post.AuthorID, userID,
		models.NotificationShare, "shared your post",
		fmt.Sprintf("/post/%d", postID)); err != nil {
		return nil, err
	}
	return share, nil
}

// SavePost bookmarks a post. One save per (user, post) regardless of the
// collection name; a second save is a conflict.
func (s *ContentStore) SavePost(ctx context.Context, userID, postID uint, collectionName string) (*models.SavedPost, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	if collectionName == "" {
		collectionName = "Saved Items"
	}

	saved := &models.SavedPost{UserID: userID, PostID: postID, CollectionName: collectionName}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SavedPost{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("post %d already saved by user %d: %w", postID, userID, storeerr.ErrConflict)
		}
		if err := tx.Create(saved).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("post %d already saved by user %d: %w", postID, userID, storeerr.ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// SavedPostsOf returns the user's bookmarks, newest save first.
func (s *ContentStore) SavedPostsOf(ctx context.Context, userID uint) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&saved).Error
	return saved, err
}
