package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/stores"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userStore     *stores.UserStore
	graphStore    *stores.GraphStore
	presenceStore *stores.PresenceStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userStore *stores.UserStore, graphStore *stores.GraphStore, presenceStore *stores.PresenceStore) *UserHandler {
	return &UserHandler{userStore: userStore, graphStore: graphStore, presenceStore: presenceStore}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/search", h.SearchUsers)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userStore.GetByID(c.Request().Context(), currentUserID(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies partial profile updates for the authenticated user
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userStore.UpdateProfile(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser returns another user's profile with graph counts and presence
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.userStore.GetByID(ctx, id)
	if err != nil {
		return storeError(err)
	}

	followers, err := h.graphStore.FollowerCount(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	following, err := h.graphStore.FollowingCount(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	isFollowing, err := h.graphStore.IsFollowing(ctx, currentUserID(c), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	isFriend, err := h.graphStore.IsFriend(ctx, currentUserID(c), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	presence, err := h.presenceStore.Get(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":            user,
		"followers_count": followers,
		"following_count": following,
		"is_following":    isFollowing,
		"is_friend":       isFriend,
		"is_online":       presence.IsOnline,
		"last_seen":       presence.LastSeen,
	})
}

// SearchUsers matches users by username or name fragment
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	users, err := h.userStore.Search(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i, u := range users {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"users": results})
}
