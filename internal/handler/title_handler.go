package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/model"
	"reviewhub/internal/policy"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

// TitleHandler handles catalog title endpoints.
type TitleHandler struct {
	titleService service.TitleService
}

// NewTitleHandler creates a new title handler.
func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// TitleResponse is the read shape of a title: category and genres are
// embedded objects, rating is the current mean review score or null.
type TitleResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	Rating      *float64        `json:"rating"`
	Description string          `json:"description"`
	Category    *model.Category `json:"category"`
	Genres      []model.Genre   `json:"genres"`
}

func newTitleResponse(rt *service.RatedTitle) TitleResponse {
	genres := rt.Title.Genres
	if genres == nil {
		genres = []model.Genre{}
	}
	return TitleResponse{
		ID:          rt.Title.ID,
		Name:        rt.Title.Name,
		Year:        rt.Title.Year,
		Rating:      rt.Rating,
		Description: rt.Title.Description,
		Category:    rt.Title.Category,
		Genres:      genres,
	}
}

// CreateTitleRequest represents a title creation request. Category and
// genres are referenced by slug.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Year        int      `json:"year" validate:"required"`
	Description string   `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

// UpdateTitleRequest represents a partial title update.
type UpdateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

// List godoc
// @Summary List titles with embedded category, genres and rating
// @Tags titles
// @Produce json
// @Param category query string false "Category slug"
// @Param genre query string false "Genre slug"
// @Param name query string false "Name substring"
// @Param year query int false "Exact year"
// @Success 200 {array} TitleResponse
// @Router /titles [get]
func (h *TitleHandler) List(c echo.Context) error {
	filter := repository.TitleFilter{
		CategorySlug: c.QueryParam("category"),
		GenreSlug:    c.QueryParam("genre"),
		Name:         c.QueryParam("name"),
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year filter")
		}
		filter.Year = &year
	}

	titles, err := h.titleService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]TitleResponse, len(titles))
	for i := range titles {
		out[i] = newTitleResponse(&titles[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get a title by id
// @Tags titles
// @Produce json
// @Param id path int true "Title ID"
// @Success 200 {object} TitleResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{id} [get]
func (h *TitleHandler) Get(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	title, err := h.titleService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTitleResponse(title))
}

// Create godoc
// @Summary Create a title (admin)
// @Tags titles
// @Accept json
// @Produce json
// @Param request body CreateTitleRequest true "Title data"
// @Success 201 {object} TitleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles [post]
func (h *TitleHandler) Create(c echo.Context) error {
	if !policy.ReadOnlyOrAdmin(CurrentUser(c), true) {
		return respondForbidden(c)
	}
	var req CreateTitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	title, err := h.titleService.Create(c.Request().Context(), service.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newTitleResponse(title))
}

// Update godoc
// @Summary Update a title (admin)
// @Tags titles
// @Accept json
// @Produce json
// @Param id path int true "Title ID"
// @Param request body UpdateTitleRequest true "Fields to update"
// @Success 200 {object} TitleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{id} [patch]
func (h *TitleHandler) Update(c echo.Context) error {
	if !policy.ReadOnlyOrAdmin(CurrentUser(c), true) {
		return respondForbidden(c)
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req UpdateTitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	title, err := h.titleService.Update(c.Request().Context(), id, service.TitleUpdate{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genres,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTitleResponse(title))
}

// Delete godoc
// @Summary Delete a title (admin)
// @Tags titles
// @Param id path int true "Title ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /titles/{id} [delete]
func (h *TitleHandler) Delete(c echo.Context) error {
	if !policy.ReadOnlyOrAdmin(CurrentUser(c), true) {
		return respondForbidden(c)
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.titleService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
