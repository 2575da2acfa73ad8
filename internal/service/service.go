// Package service contains the business logic.
//
// It sits between the handler layer and the upstream archive client.
// It receives validated input from the handler, builds the archive
// query, and maps the upstream outcome onto API errors.
package service
