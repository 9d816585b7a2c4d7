// Package http implements the REST transport of strobe.
//
// It wires chi routes for login, registration, users, favorites and movies,
// the bearer-token auth middleware, and the cross-cutting middleware for
// request tracing, access logging and response compression. Service errors
// are mapped to HTTP statuses in one place (errors_mapper.go).
package http
