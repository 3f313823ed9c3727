package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/realtime"
	"github.com/socialite-app/backend/internal/stores"
	"go.uber.org/zap"
)

// RealtimeHandler handles presence, typing relay and device registration
type RealtimeHandler struct {
	presenceStore *stores.PresenceStore
	sink          realtime.Sink
	logger        *zap.Logger
}

// NewRealtimeHandler creates a new RealtimeHandler
func NewRealtimeHandler(presenceStore *stores.PresenceStore, sink realtime.Sink, logger *zap.Logger) *RealtimeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RealtimeHandler{presenceStore: presenceStore, sink: sink, logger: logger}
}

// RegisterRealtimeRoutes registers presence and relay routes
func (h *RealtimeHandler) RegisterRealtimeRoutes(g *echo.Group) {
	g.POST("/presence/connect", h.Connect)
	g.POST("/presence/disconnect", h.Disconnect)
	g.GET("/presence/:id", h.GetPresence)
	g.POST("/typing", h.Typing)
	g.POST("/devices", h.RegisterDevice)
}

// Connect marks the authenticated user online
func (h *RealtimeHandler) Connect(c echo.Context) error {
	if err := h.presenceStore.Connect(c.Request().Context(), currentUserID(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Connected"})
}

// Disconnect marks the authenticated user offline
func (h *RealtimeHandler) Disconnect(c echo.Context) error {
	if err := h.presenceStore.Disconnect(c.Request().Context(), currentUserID(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Disconnected"})
}

// GetPresence returns another user's presence
func (h *RealtimeHandler) GetPresence(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.presenceStore.Get(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

// Typing relays a typing indicator to the receiver's live sessions. Nothing is
// persisted; a dropped relay is not an error.
func (h *RealtimeHandler) Typing(c echo.Context) error {
	var req models.TypingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	senderID := currentUserID(c)
	if h.sink != nil {
		payload := echo.Map{"sender_id": senderID, "is_typing": req.IsTyping}
		if err := h.sink.Push(c.Request().Context(), req.ReceiverID, "typing", payload); err != nil {
			h.logger.Debug("typing relay dropped",
				zap.Uint("receiver_id", req.ReceiverID),
				zap.Error(err))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Typing indicator sent"})
}

// RegisterDevice stores a push token for the authenticated user
func (h *RealtimeHandler) RegisterDevice(c echo.Context) error {
	var req models.RegisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.presenceStore.RegisterDevice(c.Request().Context(), currentUserID(c), req.Token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Device registered"})
}
