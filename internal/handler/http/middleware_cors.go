package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

const corsMaxAge = 300

// withCORS lets browser front ends on the configured origins call the API.
// Preflight requests are answered here and never reach the routes.
// Authorization is exposed so a page can read the token set on login.
func withCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"Authorization", "X-Trace-ID"},
		MaxAge:         corsMaxAge,
	})
}
