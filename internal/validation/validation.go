// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules defined
// in struct tags and turns validation errors into a message
// the client can understand
package validation
