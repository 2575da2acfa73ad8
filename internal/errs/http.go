// Package errs defines the error type returned to API clients.
//
// Every failure the gateway reports is a JSON object with a single
// `error` key:
//
//	{ "error": "Failed to fetch data from NASA API" }
//
// The HTTP status travels alongside the message but is never serialized.
package errs

import "strings"

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized
// directly to JSON by the global error handler.
//   - Status: HTTP status code written with the body.
//   - Message: human-friendly message, the only serialized field.
//   - Code: machine-friendly code used in logs (e.g. "BAD_GATEWAY").
type HTTPError struct {
	Status  int    `json:"-"`
	Code    string `json:"-"`
	Message string `json:"error"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError.
//
// It does not compare Status or Message; errors.Is(err, &HTTPError{})
// asks "is this an API error at all".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Status:  e.Status,
		Code:    e.Code,
		Message: message,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
