package habitsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/habits/pkg/httpx"
)

// Error codes carried in the "error" field of every error response.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeConflict       = "conflict"
	ErrorCodeRateLimited    = "rate_limited"
	ErrorCodeServerError    = "server_error"
)

// APIError is the typed form of an error response. The server writes it with
// WriteError and the client decodes it back, so callers can compare with
// errors.Is against the predefined values below.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return "habits: " + e.Code
	}
	return fmt.Sprintf("habits: %s: %s", e.Code, e.Message)
}

// Is matches any APIError with the same code, whatever its message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy of e carrying msg.
func (e *APIError) WithMessage(msg string) *APIError {
	cp := *e
	cp.Message = msg
	return &cp
}

// WriteError writes the error as JSON with its status code.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Message)
}

var (
	// ErrInvalidRequest is returned when a body, query or path parameter fails validation.
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "invalid request",
	}

	// ErrUnauthorized is returned for a missing or bad token and for failed logins.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "authentication required",
	}

	// ErrNotFound is returned when a resource is absent or owned by someone else.
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "not found",
	}

	// ErrConflict is returned when registering a taken username or email.
	ErrConflict = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "already exists",
	}

	ErrRateLimited = &APIError{
		StatusCode: http.StatusTooManyRequests,
		Code:       ErrorCodeRateLimited,
		Message:    "Too many requests. Please try again later.",
	}

	// ErrServerError hides the cause of an unexpected failure from the client.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "Server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError. A body that
// is not an error document still yields an error keyed on the status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       codeForStatus(resp.StatusCode),
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrorCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrorCodeUnauthorized
	case http.StatusNotFound:
		return ErrorCodeNotFound
	case http.StatusConflict:
		return ErrorCodeConflict
	case http.StatusTooManyRequests:
		return ErrorCodeRateLimited
	default:
		return ErrorCodeServerError
	}
}
