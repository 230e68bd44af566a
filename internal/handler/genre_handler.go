package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/policy"
	"reviewhub/internal/service"
)

// GenreHandler handles the slug-keyed genre vocabulary.
type GenreHandler struct {
	catalogService service.CatalogService
}

// NewGenreHandler creates a new genre handler.
func NewGenreHandler(catalogService service.CatalogService) *GenreHandler {
	return &GenreHandler{catalogService: catalogService}
}

// List godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Param search query string false "Name substring filter"
// @Success 200 {array} model.Genre
// @Router /genres [get]
func (h *GenreHandler) List(c echo.Context) error {
	genres, err := h.catalogService.ListGenres(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, genres)
}

// Create godoc
// @Summary Create a genre (admin)
// @Tags genres
// @Accept json
// @Produce json
// @Param request body TermRequest true "Genre data"
// @Success 201 {object} model.Genre
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /genres [post]
func (h *GenreHandler) Create(c echo.Context) error {
	if !policy.ReadOnlyOrAdmin(CurrentUser(c), true) {
		return respondForbidden(c)
	}
	var req TermRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	genre, err := h.catalogService.CreateGenre(c.Request().Context(), req.Name, req.Slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, genre)
}

// Delete godoc
// @Summary Delete a genre by slug (admin); titles keep their rows, only join rows go
// @Tags genres
// @Param slug path string true "Genre slug"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /genres/{slug} [delete]
func (h *GenreHandler) Delete(c echo.Context) error {
	if !policy.ReadOnlyOrAdmin(CurrentUser(c), true) {
		return respondForbidden(c)
	}
	if err := h.catalogService.DeleteGenre(c.Request().Context(), c.Param("slug")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
