package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if len(h.corsOrigins) > 0 {
		router.Use(withCORS(h.corsOrigins))
	}
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.welcome)
		r.Get("/api/version", h.getServerVersion)
		r.Post("/login", h.login)
		r.Post("/users", h.register)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/users", h.listUsers)
		r.Get("/users/{username}", h.getUser)
		r.Put("/users/{username}", h.updateUser)
		r.Delete("/users/{username}", h.deleteUser)
		r.Post("/users/{username}/movies/{movieID}", h.addFavoriteMovie)
		r.Delete("/users/{username}/movies/{movieID}", h.removeFavoriteMovie)

		r.Get("/movies", h.listMovies)
		r.Get("/movies/{title}", h.getMovie)
	})

	if h.staticDir != "" {
		router.Get("/*", http.FileServer(http.Dir(h.staticDir)).ServeHTTP)
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
