package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUserNotFound is returned when no identity matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrTitleNotFound is returned when a referenced title does not exist.
	ErrTitleNotFound = errors.New("title not found")
	// ErrCategoryNotFound is returned when a referenced category slug does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrGenreNotFound is returned when a referenced genre slug does not exist.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrReviewNotFound is returned when a referenced review does not exist.
	ErrReviewNotFound = errors.New("review not found")
	// ErrCommentNotFound is returned when a referenced comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrDuplicateReview is returned when an author already reviewed a title.
	ErrDuplicateReview = errors.New("author already reviewed this title")
	// ErrDuplicateSlug is returned on a category/genre slug collision.
	ErrDuplicateSlug = errors.New("slug already in use")
	// ErrDuplicateUser is returned on a username/email collision.
	ErrDuplicateUser = errors.New("username or email already in use")
	// ErrInvalidConfirmationCode is returned when a confirmation code is wrong or stale.
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrForbidden is returned when the requester lacks standing for the operation.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrUnauthorized is returned when a credential is missing or invalid.
	ErrUnauthorized = errors.New("authentication required")
)

// ValidationError aggregates field-level violations. Every violated rule
// contributes its own message; callers collect all of them before failing.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add records a violation message for a field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no violations were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Err returns the error itself, or nil when nothing was recorded.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string][]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. The outermost error
// message is kept so wrap context (e.g. the offending slug) reaches the
// client.
func MapErrorToHTTP(err error) *HTTPError {
	var validation *ValidationError
	if errors.As(err, &validation) {
		httpErr := NewHTTPError(http.StatusBadRequest, "validation failed", "VALIDATION_ERROR")
		httpErr.Fields = validation.Fields
		return httpErr
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrTitleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TITLE_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrGenreNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GENRE_NOT_FOUND")
	case errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REVIEW_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrDuplicateReview):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_REVIEW")
	case errors.Is(err, ErrDuplicateSlug):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_SLUG")
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_USER")
	case errors.Is(err, ErrInvalidConfirmationCode):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CONFIRMATION_CODE")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
