package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/policy"
	"reviewhub/internal/service"
)

// UserHandler handles identity management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserResponse is the read shape of an identity.
type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

// CreateUserRequest represents an admin user-creation request.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateUserRequest represents a partial user update. On the /users/me
// path the role field is ignored.
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func (r UpdateUserRequest) toUpdate() service.UserUpdate {
	return service.UserUpdate{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Role:      r.Role,
	}
}

// List godoc
// @Summary List users (admin)
// @Tags users
// @Produce json
// @Param search query string false "Username substring filter"
// @Success 200 {array} UserResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	if !policy.AdminOnly(CurrentUser(c)) {
		return respondForbidden(c)
	}
	users, err := h.userService.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = newUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get a user by username (admin)
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} UserResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	if !policy.AdminOnly(CurrentUser(c)) {
		return respondForbidden(c)
	}
	user, err := h.userService.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// Create godoc
// @Summary Create a user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	if !policy.AdminOnly(CurrentUser(c)) {
		return respondForbidden(c)
	}
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), service.UserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newUserResponse(user))
}

// Update godoc
// @Summary Update a user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{username} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	if !policy.AdminOnly(CurrentUser(c)) {
		return respondForbidden(c)
	}
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("username"), req.toUpdate())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// Delete godoc
// @Summary Delete a user (admin)
// @Tags users
// @Param username path string true "Username"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{username} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if !policy.AdminOnly(CurrentUser(c)) {
		return respondForbidden(c)
	}
	if err := h.userService.Delete(c.Request().Context(), c.Param("username")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return respondError(c, apperrors.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateMe godoc
// @Summary Update own profile (role changes are ignored)
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return respondError(c, apperrors.ErrUnauthorized)
	}
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.userService.UpdateSelf(c.Request().Context(), user, req.toUpdate())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserResponse(updated))
}
