package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/model"
	"reviewhub/internal/service"
)

// CommentHandler handles comment endpoints nested under a review.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentResponse is the read shape of a comment; author is the username.
type CommentResponse struct {
	ID       uint      `json:"id"`
	ReviewID uint      `json:"review_id"`
	Text     string    `json:"text"`
	Author   string    `json:"author"`
	PubDate  time.Time `json:"pub_date"`
}

func newCommentResponse(cm *model.Comment) CommentResponse {
	return CommentResponse{
		ID:       cm.ID,
		ReviewID: cm.ReviewID,
		Text:     cm.Text,
		Author:   cm.Author.Username,
		PubDate:  cm.PubDate,
	}
}

// CommentRequest represents a comment creation request.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateCommentRequest represents a partial comment update.
type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

type commentPath struct {
	titleID   uint
	reviewID  uint
	commentID uint
}

func (h *CommentHandler) bindPath(c echo.Context, withID bool) (commentPath, error) {
	var p commentPath
	var err error
	if p.titleID, err = parseUintParam(c, "title_id"); err != nil {
		return p, echo.NewHTTPError(http.StatusBadRequest, "invalid title id")
	}
	if p.reviewID, err = parseUintParam(c, "review_id"); err != nil {
		return p, echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}
	if withID {
		if p.commentID, err = parseUintParam(c, "id"); err != nil {
			return p, echo.NewHTTPError(http.StatusBadRequest, "invalid comment id")
		}
	}
	return p, nil
}

// List godoc
// @Summary List comments of a review
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 200 {array} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	p, err := h.bindPath(c, false)
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListByReview(c.Request().Context(), p.titleID, p.reviewID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = newCommentResponse(&comments[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 200 {object} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	p, err := h.bindPath(c, true)
	if err != nil {
		return err
	}
	comment, err := h.commentService.Get(c.Request().Context(), p.titleID, p.reviewID, p.commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCommentResponse(comment))
}

// Create godoc
// @Summary Comment on a review
// @Tags comments
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param request body CommentRequest true "Comment data"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	p, err := h.bindPath(c, false)
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), CurrentUser(c), p.titleID, p.reviewID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// Update godoc
// @Summary Update a comment (author or escalated standing)
// @Tags comments
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param id path int true "Comment ID"
// @Param request body UpdateCommentRequest true "Fields to update"
// @Success 200 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/comments/{id} [patch]
func (h *CommentHandler) Update(c echo.Context) error {
	p, err := h.bindPath(c, true)
	if err != nil {
		return err
	}
	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	comment, err := h.commentService.Update(c.Request().Context(), CurrentUser(c), p.titleID, p.reviewID, p.commentID, service.CommentUpdate{
		Text: req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCommentResponse(comment))
}

// Delete godoc
// @Summary Delete a comment (author or escalated standing)
// @Tags comments
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{review_id}/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	p, err := h.bindPath(c, true)
	if err != nil {
		return err
	}
	if err := h.commentService.Delete(c.Request().Context(), CurrentUser(c), p.titleID, p.reviewID, p.commentID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
