package stores

import (
	"context"
	"time"

	"github.com/socialite-app/backend/internal/models"
	"gorm.io/gorm"
)

const (
	trendingWindow = 7 * 24 * time.Hour
	trendingLimit  = 10
)

// FeedPage is one chronological page of a user's feed.
type FeedPage struct {
	Posts       []models.Post `json:"posts"`
	Total       int64         `json:"total"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

// FeedComposer builds chronological post pages over a user's follow set.
// It does not filter posts by their visibility scope against the viewer;
// callers get the privacy field back and decide what to render.
type FeedComposer struct {
	db    *gorm.DB
	graph *GraphStore
}

// NewFeedComposer creates a new FeedComposer
func NewFeedComposer(db *gorm.DB, graph *GraphStore) *FeedComposer {
	return &FeedComposer{db: db, graph: graph}
}

// ComposeFeed returns the page of posts authored by the user or anyone they
// follow, newest first with ids breaking ties, plus pagination metadata.
func (f *FeedComposer) ComposeFeed(ctx context.Context, userID uint, page, pageSize int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	audience, err := f.audienceOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := f.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id IN ?", audience).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := f.db.WithContext(ctx).
		Where("author_id IN ?", audience).
		Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:       posts,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		HasNext:     int64(page*pageSize) < total,
		HasPrevious: page > 1,
	}, nil
}

// Trending returns the ten most reacted-to posts of the trailing week,
// reaction count descending, ids breaking ties.
func (f *FeedComposer) Trending(ctx context.Context) ([]models.Post, error) {
	since := time.Now().UTC().Add(-trendingWindow)

	var posts []models.Post
	err := f.db.WithContext(ctx).Model(&models.Post{}).
		Select("posts.*").
		Joins("JOIN reactions ON reactions.post_id = posts.id").
		Where("posts.created_at >= ?", since).
		Group("posts.id").
		Order("count(reactions.id) DESC").Order("posts.id DESC").
		Limit(trendingLimit).
		Find(&posts).Error
	return posts, err
}

// audienceOf is {user} ∪ FollowingOf(user).
func (f *FeedComposer) audienceOf(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := f.graph.FollowingIDsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(ids, userID), nil
}
