package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/model"
	"reviewhub/internal/service"
)

// ReviewHandler handles review endpoints nested under a title.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ReviewResponse is the read shape of a review; author is the username.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	TitleID uint      `json:"title_id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func newReviewResponse(r *model.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		TitleID: r.TitleID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

// CreateReviewRequest represents a review creation request.
type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required"`
}

// UpdateReviewRequest represents a partial review update.
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// List godoc
// @Summary List reviews of a title
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Success 200 {array} ReviewResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	titleID, err := parseUintParam(c, "title_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid title id")
	}
	reviews, err := h.reviewService.ListByTitle(c.Request().Context(), titleID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = newReviewResponse(&reviews[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get a review
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 200 {object} ReviewResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	titleID, err := parseUintParam(c, "title_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid title id")
	}
	reviewID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}
	review, err := h.reviewService.Get(c.Request().Context(), titleID, reviewID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newReviewResponse(review))
}

// Create godoc
// @Summary Post a review; one per title per author
// @Tags reviews
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param request body CreateReviewRequest true "Review data"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	titleID, err := parseUintParam(c, "title_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid title id")
	}
	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Create(c.Request().Context(), CurrentUser(c), titleID, req.Text, req.Score)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newReviewResponse(review))
}

// Update godoc
// @Summary Update a review (author or escalated standing)
// @Tags reviews
// @Accept json
// @Produce json
// @Param title_id path int true "Title ID"
// @Param id path int true "Review ID"
// @Param request body UpdateReviewRequest true "Fields to update"
// @Success 200 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{id} [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	titleID, err := parseUintParam(c, "title_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid title id")
	}
	reviewID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}
	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	review, err := h.reviewService.Update(c.Request().Context(), CurrentUser(c), titleID, reviewID, service.ReviewUpdate{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newReviewResponse(review))
}

// Delete godoc
// @Summary Delete a review (author or escalated standing)
// @Tags reviews
// @Param title_id path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{title_id}/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	titleID, err := parseUintParam(c, "title_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid title id")
	}
	reviewID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}
	if err := h.reviewService.Delete(c.Request().Context(), CurrentUser(c), titleID, reviewID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
