package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
)

// ContextUserKey is the echo context key under which the resolved
// requesting identity is stored by the router middleware.
const ContextUserKey = "currentUser"

// CurrentUser returns the requesting identity, or nil for anonymous
// callers.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

// respondError translates a domain error into the standard error body.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// respondForbidden is the uniform policy-denial response.
func respondForbidden(c echo.Context) error {
	return respondError(c, apperrors.ErrForbidden)
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
