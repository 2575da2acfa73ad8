package errs

import (
	"net/http"
)

// New creates an HTTPError for an arbitrary status.
//
// Codes are derived from the status text, so a status Go does not know
// (e.g. an upstream 599) gets the code "UNKNOWN".
func New(status int, message string) *HTTPError {
	code := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code == "" {
		code = "UNKNOWN"
	}

	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// NewUpstreamError reports that the upstream answered with a non-200 status.
// The caller receives the same status the upstream sent.
func NewUpstreamError(status int, message string) *HTTPError {
	return New(status, message)
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
func NewBadRequestError(message string) *HTTPError {
	return New(http.StatusBadRequest, message)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return New(http.StatusNotFound, message)
}

// NewInternalServerError creates a 500 HTTPError carrying the given message.
//
// Transport and decode failures surface their own text to the client,
// so the message is not replaced with the generic status text.
func NewInternalServerError(message string) *HTTPError {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return New(http.StatusInternalServerError, message)
}

// ValidationError creates a 400 Bad Request HTTPError for a request that
// failed validation, e.g. "Validation failed: star_name is required".
func ValidationError(detail string) *HTTPError {
	return NewBadRequestError("Validation failed: " + detail)
}
