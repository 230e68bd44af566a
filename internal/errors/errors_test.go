package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"title not found", ErrTitleNotFound, http.StatusNotFound, "TITLE_NOT_FOUND"},
		{"duplicate review", ErrDuplicateReview, http.StatusConflict, "DUPLICATE_REVIEW"},
		{"duplicate slug", ErrDuplicateSlug, http.StatusConflict, "DUPLICATE_SLUG"},
		{"duplicate user", ErrDuplicateUser, http.StatusConflict, "DUPLICATE_USER"},
		{"bad confirmation code", ErrInvalidConfirmationCode, http.StatusBadRequest, "INVALID_CONFIRMATION_CODE"},
		{"bad refresh token", ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown errors are masked", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_KeepsWrapContext(t *testing.T) {
	err := fmt.Errorf("%w: %q", ErrCategoryNotFound, "books")
	httpErr := MapErrorToHTTP(err)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, `"books"`)
}

func TestMapErrorToHTTP_Validation(t *testing.T) {
	errs := NewValidationError()
	errs.Add("score", "score must be at least 1")
	errs.Add("text", "text is required")

	httpErr := MapErrorToHTTP(errs)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", httpErr.Code)
	assert.Len(t, httpErr.Fields, 2)
}

func TestValidationError(t *testing.T) {
	errs := NewValidationError()
	assert.True(t, errs.Empty())
	assert.NoError(t, errs.Err())

	errs.Add("username", "username is required")
	errs.Add("username", "username is too long")
	assert.False(t, errs.Empty())
	assert.Error(t, errs.Err())
	assert.Len(t, errs.Fields["username"], 2)
}
