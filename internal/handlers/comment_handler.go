package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/storeerr"
	"github.com/socialite-app/backend/internal/stores"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	contentStore *stores.ContentStore
	userStore    *stores.UserStore
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(contentStore *stores.ContentStore, userStore *stores.UserStore) *CommentHandler {
	return &CommentHandler{contentStore: contentStore, userStore: userStore}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetComments)
	g.GET("/comments/:id/replies", h.GetReplies)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/react", h.ReactToComment)
}

// CreateComment adds a comment or a single-level reply to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.contentStore.CreateComment(c.Request().Context(), currentUserID(c), postID, req)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments lists a post's top-level comments with their authors
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	comments, err := h.contentStore.CommentsOf(ctx, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	type commentResponse struct {
		models.Comment
		Author models.UserCompact `json:"author"`
	}
	results := make([]commentResponse, len(comments))
	for i, comment := range comments {
		author, err := h.userStore.GetByID(ctx, comment.UserID)
		switch {
		case err == nil:
			results[i] = commentResponse{Comment: comment, Author: author.ToCompact()}
		case errors.Is(err, storeerr.ErrNotFound):
			results[i] = commentResponse{Comment: comment}
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": results})
}

// GetReplies lists the replies of a comment
func (h *CommentHandler) GetReplies(c echo.Context) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	replies, err := h.contentStore.RepliesOf(c.Request().Context(), commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"replies": replies})
}

// UpdateComment edits a comment's body (author only)
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.contentStore.EditComment(c.Request().Context(), commentID, currentUserID(c), req.Content)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment and its replies (author only)
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.contentStore.DeleteComment(c.Request().Context(), commentID, currentUserID(c)); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReactToComment toggles the authenticated user's reaction on a comment
func (h *CommentHandler) ReactToComment(c echo.Context) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	req := models.ReactRequest{Kind: models.ReactionLike}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Kind == "" {
		req.Kind = models.ReactionLike
	}

	result, err := h.contentStore.ToggleCommentReaction(c.Request().Context(), currentUserID(c), commentID, req.Kind)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, result)
}
