package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotJSON is returned when a write request does not carry a JSON body.
	ErrNotJSON = errors.New("Error: Data must be json")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("Error: The username is already registered.")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("Error: The email is already registered.")
	// ErrDuplicateField is returned when the store rejects a unique value.
	ErrDuplicateField = errors.New("a unique field is already taken")
	// ErrPasswordTooLong is returned when a password exceeds what bcrypt can hash.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrInvalidCredentials is returned when a username/password pair does not verify.
	ErrInvalidCredentials = errors.New("User NOT verified")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrMemberNotFound is returned when a family member is not found.
	ErrMemberNotFound = errors.New("family member not found")
	// ErrItemNotFound is returned when a list item is not found.
	ErrItemNotFound = errors.New("list item not found")
	// ErrEventNotFound is returned when an event is not found.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidReference is returned when a referenced owner does not exist.
	ErrInvalidReference = errors.New("referenced owner does not exist")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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
		Error: e.Message,
		Code:  e.Code,
	}
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrNotJSON, http.StatusBadRequest, "INVALID_CONTENT_TYPE"},
	{ErrUsernameTaken, http.StatusBadRequest, "USERNAME_TAKEN"},
	{ErrEmailTaken, http.StatusBadRequest, "EMAIL_TAKEN"},
	{ErrDuplicateField, http.StatusBadRequest, "DUPLICATE_FIELD"},
	{ErrPasswordTooLong, http.StatusBadRequest, "PASSWORD_TOO_LONG"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "USER_NOT_VERIFIED"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrMemberNotFound, http.StatusNotFound, "MEMBER_NOT_FOUND"},
	{ErrItemNotFound, http.StatusNotFound, "ITEM_NOT_FOUND"},
	{ErrEventNotFound, http.StatusNotFound, "EVENT_NOT_FOUND"},
	{ErrInvalidReference, http.StatusUnprocessableEntity, "INVALID_REFERENCE"},
}

// MapErrorToHTTP maps domain errors, wrapped or not, to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
