package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/storeerr"
	"github.com/socialite-app/backend/internal/stores"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedComposer *stores.FeedComposer
	contentStore *stores.ContentStore
	userStore    *stores.UserStore
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedComposer *stores.FeedComposer, contentStore *stores.ContentStore, userStore *stores.UserStore) *FeedHandler {
	return &FeedHandler{feedComposer: feedComposer, contentStore: contentStore, userStore: userStore}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/trending", h.GetTrending)
}

// EnrichedPost is a post with author info and the viewer's own state
type EnrichedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	Reactions    map[string]int64   `json:"reactions"`
	UserReaction string             `json:"user_reaction,omitempty"`
}

// GetFeed returns a chronological page of posts from the user's follow set
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUser := currentUserID(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("per_page"))

	ctx := c.Request().Context()
	feed, err := h.feedComposer.ComposeFeed(ctx, currentUser, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := h.enrich(c, feed.Posts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":        enriched,
		"total":        feed.Total,
		"current_page": feed.Page,
		"per_page":     feed.PageSize,
		"has_next":     feed.HasNext,
		"has_prev":     feed.HasPrevious,
	})
}

// GetTrending returns the most reacted-to posts of the trailing week
func (h *FeedHandler) GetTrending(c echo.Context) error {
	posts, err := h.feedComposer.Trending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched, err := h.enrich(c, posts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"trending_posts": enriched})
}

func (h *FeedHandler) enrich(c echo.Context, posts []models.Post) ([]EnrichedPost, error) {
	ctx := c.Request().Context()
	currentUser := currentUserID(c)

	authorCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedPost, len(posts))
	for i, post := range posts {
		author, ok := authorCache[post.AuthorID]
		if !ok {
			user, err := h.userStore.GetByID(ctx, post.AuthorID)
			switch {
			case err == nil:
				author = user.ToCompact()
			case errors.Is(err, storeerr.ErrNotFound):
				// A deleted author renders as a zero-valued compact user.
			default:
				return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			authorCache[post.AuthorID] = author
		}

		counts, err := h.contentStore.ReactionCounts(ctx, post.ID)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		viewerReaction, err := h.contentStore.UserReaction(ctx, currentUser, post.ID)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		enriched[i] = EnrichedPost{
			Post:         post,
			Author:       author,
			Reactions:    counts,
			UserReaction: viewerReaction,
		}
	}
	return enriched, nil
}
