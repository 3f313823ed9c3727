package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/stores"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	graphStore *stores.GraphStore
	userStore  *stores.UserStore
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(graphStore *stores.GraphStore, userStore *stores.UserStore) *FriendshipHandler {
	return &FriendshipHandler{graphStore: graphStore, userStore: userStore}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests", h.GetPendingFriendRequests)
	g.PUT("/friends/accept/:id", h.AcceptFriendRequest)
	g.DELETE("/friends/reject/:id", h.RejectFriendRequest)
	g.GET("/friends", h.GetFriends)
	g.DELETE("/friends/:id", h.Unfriend)
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	friendRequest, err := h.graphStore.RequestFriendship(c.Request().Context(), currentUserID(c), req.ReceiverID)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, friendRequest)
}

// GetPendingFriendRequests retrieves pending friend requests for the authenticated user
func (h *FriendshipHandler) GetPendingFriendRequests(c echo.Context) error {
	requests, err := h.graphStore.PendingRequestsFor(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"friend_requests": requests})
}

// AcceptFriendRequest accepts a pending friend request addressed to the user
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.graphStore.AcceptFriendship(c.Request().Context(), requestID, currentUserID(c)); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Friend request accepted"})
}

// RejectFriendRequest declines a pending friend request addressed to the user
func (h *FriendshipHandler) RejectFriendRequest(c echo.Context) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.graphStore.RejectFriendship(c.Request().Context(), requestID, currentUserID(c)); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	friends, err := h.graphStore.FriendsOf(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(friends))
	for i, f := range friends {
		results[i] = f.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"friends": results})
}

// Unfriend removes both follow edges and any friendship record with the target
func (h *FriendshipHandler) Unfriend(c echo.Context) error {
	friendID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.graphStore.Unfriend(c.Request().Context(), currentUserID(c), friendID); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
