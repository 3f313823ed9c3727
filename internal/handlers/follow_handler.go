package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/stores"
)

// FollowHandler handles HTTP requests related to follows
type FollowHandler struct {
	graphStore *stores.GraphStore
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graphStore *stores.GraphStore) *FollowHandler {
	return &FollowHandler{graphStore: graphStore}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:id", h.Follow)
	g.DELETE("/follow/:id", h.Unfollow)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// Follow makes the authenticated user follow the target
func (h *FollowHandler) Follow(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.graphStore.Follow(c.Request().Context(), currentUserID(c), targetID); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Following"})
}

// Unfollow removes the follow edge toward the target
func (h *FollowHandler) Unfollow(c echo.Context) error {
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.graphStore.Unfollow(c.Request().Context(), currentUserID(c), targetID); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFollowers lists the users following the target
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	followers, err := h.graphStore.FollowersOf(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(followers))
	for i, u := range followers {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"followers": results})
}

// GetFollowing lists the users the target follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	following, err := h.graphStore.FollowingOf(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(following))
	for i, u := range following {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"following": results})
}
