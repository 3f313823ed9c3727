package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/stores"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyStore *stores.StoryStore
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyStore *stores.StoryStore) *StoryHandler {
	return &StoryHandler{storyStore: storyStore}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories", h.GetStories)
	g.POST("/stories/:id/view", h.ViewStory)
	g.GET("/stories/:id/views", h.GetViewCount)
}

// CreateStory publishes a new story for the authenticated user
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story, err := h.storyStore.CreateStory(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, story)
}

// GetStories returns active stories from the user's audience, grouped by author
func (h *StoryHandler) GetStories(c echo.Context) error {
	groups, err := h.storyStore.ListActiveStories(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": groups})
}

// ViewStory records that the authenticated user saw a story
func (h *StoryHandler) ViewStory(c echo.Context) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.storyStore.RecordView(c.Request().Context(), storyID, currentUserID(c)); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Story viewed"})
}

// GetViewCount returns how many distinct users saw a story
func (h *StoryHandler) GetViewCount(c echo.Context) error {
	storyID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	count, err := h.storyStore.ViewCount(c.Request().Context(), storyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"views": count})
}
