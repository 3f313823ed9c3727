package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/stores"
)

// MessagingHandler handles direct-messaging HTTP requests
type MessagingHandler struct {
	messagingStore *stores.MessagingStore
}

// NewMessagingHandler creates a new MessagingHandler
func NewMessagingHandler(messagingStore *stores.MessagingStore) *MessagingHandler {
	return &MessagingHandler{messagingStore: messagingStore}
}

// RegisterMessagingRoutes registers messaging-related routes
func (h *MessagingHandler) RegisterMessagingRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/:id", h.GetMessages)
	g.GET("/conversations", h.GetConversations)
}

// SendMessage sends a direct message from the authenticated user
func (h *MessagingHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.messagingStore.SendMessage(c.Request().Context(), currentUserID(c), req.ReceiverID, req.Content, req.Image)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// GetMessages returns the history with a counterpart. Viewing marks their
// messages as read.
func (h *MessagingHandler) GetMessages(c echo.Context) error {
	counterpartID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	messages, err := h.messagingStore.ListMessages(c.Request().Context(), currentUserID(c), counterpartID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

// GetConversations summarizes the user's message history per counterpart
func (h *MessagingHandler) GetConversations(c echo.Context) error {
	conversations, err := h.messagingStore.ListConversations(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"conversations": conversations})
}
