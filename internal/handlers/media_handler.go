package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/media"
)

// maxUploadBytes caps a single media upload at 10 MB.
const maxUploadBytes = 10 << 20

// MediaHandler handles upload and retrieval of user media
type MediaHandler struct {
	store *media.Store
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(store *media.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

// RegisterMediaRoutes registers the authenticated upload route
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.Upload)
}

// RegisterPublicMediaRoutes registers the unauthenticated retrieval route
func (h *MediaHandler) RegisterPublicMediaRoutes(g *echo.Group) {
	g.GET("/media/:key", h.Get)
}

// Upload stores a multipart file and returns its reference URL
func (h *MediaHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.store.Save(c.Request().Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}

// Get streams a stored upload back to the client
func (h *MediaHandler) Get(c echo.Context) error {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing media key")
	}

	obj, err := h.store.Get(c.Request().Context(), key)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}
	return c.Blob(http.StatusOK, obj.ContentType, obj.Data)
}
