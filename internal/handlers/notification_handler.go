package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/notify"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	dispatcher *notify.Dispatcher
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(dispatcher *notify.Dispatcher) *NotificationHandler {
	return &NotificationHandler{dispatcher: dispatcher}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkRead)
	g.PUT("/notifications/read-all", h.MarkAllRead)
}

// GetNotifications returns the user's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.dispatcher.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": notifications})
}

// GetUnreadCount returns the number of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.dispatcher.UnreadCount(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	notificationID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.dispatcher.MarkRead(c.Request().Context(), notificationID, currentUserID(c)); err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification as read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.dispatcher.MarkAllRead(c.Request().Context(), currentUserID(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
