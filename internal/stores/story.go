package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/sanitize"
	"github.com/socialite-app/backend/internal/storeerr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultStoryHours = 24

// StoryStore owns ephemeral stories and their viewer sets.
type StoryStore struct {
	db    *gorm.DB
	graph *GraphStore
}

// NewStoryStore creates a new StoryStore
func NewStoryStore(db *gorm.DB, graph *GraphStore) *StoryStore {
	return &StoryStore{db: db, graph: graph}
}

// CreateStory publishes a story expiring duration hours from now (default 24).
func (s *StoryStore) CreateStory(ctx context.Context, userID uint, req models.CreateStoryRequest) (*models.Story, error) {
	hours := req.DurationHours
	if hours <= 0 {
		hours = defaultStoryHours
	}
	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = "text"
	}

	now := time.Now().UTC()
	story := &models.Story{
		UserID:          userID,
		MediaType:       mediaType,
		MediaURL:        req.MediaURL,
		Text:            sanitize.Content(req.Text),
		BackgroundColor: req.BackgroundColor,
		DurationHours:   hours,
		CreatedAt:       now,
		ExpiresAt:       now.Add(time.Duration(hours) * time.Hour),
	}
	if err := s.db.WithContext(ctx).Create(story).Error; err != nil {
		return nil, err
	}
	return story, nil
}

// ListActiveStories returns the unexpired stories from the user's audience
// set, grouped by author, authors ordered by their freshest story.
func (s *StoryStore) ListActiveStories(ctx context.Context, userID uint) ([]models.StoryGroup, error) {
	audience, err := s.graph.FollowingIDsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	audience = append(audience, userID)

	var stories []models.Story
	if err := s.db.WithContext(ctx).
		Where("user_id IN ? AND expires_at > ?", audience, time.Now().UTC()).
		Order("created_at DESC").Order("id DESC").
		Find(&stories).Error; err != nil {
		return nil, err
	}
	if len(stories) == 0 {
		return []models.StoryGroup{}, nil
	}

	authorIDs := make([]uint, 0, len(stories))
	seen := make(map[uint]bool)
	for _, st := range stories {
		if !seen[st.UserID] {
			seen[st.UserID] = true
			authorIDs = append(authorIDs, st.UserID)
		}
	}

	var authors []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return nil, err
	}
	authorByID := make(map[uint]models.User, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = a
	}

	groupByAuthor := make(map[uint]int, len(authorIDs))
	groups := make([]models.StoryGroup, 0, len(authorIDs))
	for _, id := range authorIDs {
		a := authorByID[id]
		groupByAuthor[id] = len(groups)
		groups = append(groups, models.StoryGroup{User: a.ToCompact()})
	}
	for _, st := range stories {
		i := groupByAuthor[st.UserID]
		groups[i].Stories = append(groups[i].Stories, st)
	}
	return groups, nil
}

// RecordView adds the viewer to the story's viewer set. Repeat views are
// no-ops; the unique (story, viewer) index enforces at-most-once.
func (s *StoryStore) RecordView(ctx context.Context, storyID, viewerID uint) error {
	var story models.Story
	if err := s.db.WithContext(ctx).First(&story, storyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("story %d: %w", storyID, storeerr.ErrNotFound)
		}
		return err
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "story_id"}, {Name: "viewer_id"}},
		DoNothing: true,
	}).Create(&models.StoryView{StoryID: storyID, ViewerID: viewerID, SeenAt: time.Now().UTC()}).Error
}

// ViewCount returns how many distinct viewers a story has.
func (s *StoryStore) ViewCount(ctx context.Context, storyID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.StoryView{}).
		Where("story_id = ?", storyID).Count(&count).Error
	return count, err
}
