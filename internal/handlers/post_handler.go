package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/stores"
)

// PostHandler handles HTTP requests related to posts, reactions, shares and saves
type PostHandler struct {
	contentStore *stores.ContentStore
	userStore    *stores.UserStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(contentStore *stores.ContentStore, userStore *stores.UserStore) *PostHandler {
	return &PostHandler{contentStore: contentStore, userStore: userStore}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/react", h.ReactToPost)
	g.POST("/posts/:id/share", h.SharePost)
	g.POST("/posts/:id/save", h.SavePost)
	g.GET("/saved-posts", h.GetSavedPosts)
}

// CreatePost creates a post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.contentStore.CreatePost(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost returns a post enriched with its author, reactions and the viewer's state
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.contentStore.GetPost(ctx, postID)
	if err != nil {
		return storeError(err)
	}

	author, err := h.userStore.GetByID(ctx, post.AuthorID)
	if err != nil {
		return storeError(err)
	}
	counts, err := h.contentStore.ReactionCounts(ctx, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	viewerReaction, err := h.contentStore.UserReaction(ctx, currentUserID(c), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"post":          post,
		"author":        author.ToCompact(),
		"reactions":     counts,
		"user_reaction": viewerReaction,
	})
}

// UpdatePost edits a post's body (author only)
func (h *PostHandler) UpdatePost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.contentStore.EditPost(c.Request().Context(), postID, currentUserID(c), req.Content)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post and everything hanging off it (author only)
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.contentStore.DeletePost(c.Request().Context(), postID, currentUserID(c)); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReactToPost toggles the authenticated user's reaction on a post
func (h *PostHandler) ReactToPost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.contentStore.ToggleReaction(c.Request().Context(), currentUserID(c), postID, req.Kind)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// SharePost re-posts a post onto the authenticated user's timeline
func (h *PostHandler) SharePost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.ShareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	share, err := h.contentStore.SharePost(c.Request().Context(), currentUserID(c), postID, req.Caption)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, share)
}

// SavePost bookmarks a post for the authenticated user
func (h *PostHandler) SavePost(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.SavePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	saved, err := h.contentStore.SavePost(c.Request().Context(), currentUserID(c), postID, req.CollectionName)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// GetSavedPosts lists the authenticated user's bookmarks with their posts
func (h *PostHandler) GetSavedPosts(c echo.Context) error {
	ctx := c.Request().Context()
	saved, err := h.contentStore.SavedPostsOf(ctx, currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postIDs := make([]uint, len(saved))
	for i, s := range saved {
		postIDs[i] = s.PostID
	}
	posts, err := h.contentStore.PostsByIDs(ctx, postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	type savedPostResponse struct {
		models.SavedPost
		Post models.Post `json:"post"`
	}
	results := make([]savedPostResponse, 0, len(saved))
	for _, s := range saved {
		post, ok := posts[s.PostID]
		if !ok {
			continue
		}
		results = append(results, savedPostResponse{SavedPost: s, Post: post})
	}
	return c.JSON(http.StatusOK, echo.Map{"saved_posts": results})
}
