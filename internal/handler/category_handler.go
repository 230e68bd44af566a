package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/policy"
	"reviewhub/internal/service"
)

// CategoryHandler handles the slug-keyed category vocabulary.
type CategoryHandler struct {
	catalogService service.CatalogService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(catalogService service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

// TermRequest represents a category or genre creation request.
type TermRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param search query string false "Name substring filter"
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Create godoc
// @Summary Create a category (admin)
// @Tags categories
// @Accept json
// @Produce json
// @Param request body TermRequest true "Category data"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
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

	category, err := h.catalogService.CreateCategory(c.Request().Context(), req.Name, req.Slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// Delete godoc
// @Summary Delete a category by slug (admin); dependent titles keep a null category
// @Tags categories
// @Param slug path string true "Category slug"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /categories/{slug} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if !policy.ReadOnlyOrAdmin(CurrentUser(c), true) {
		return respondForbidden(c)
	}
	if err := h.catalogService.DeleteCategory(c.Request().Context(), c.Param("slug")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
