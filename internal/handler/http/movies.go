package http

import (
	"net/http"

	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/utils"
)

func (h *Handler) listMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.services.MovieService.ListMovies(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("listing movies failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, movies, http.StatusOK)
}

func (h *Handler) getMovie(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title")

	movie, err := h.services.MovieService.GetMovieByTitle(r.Context(), title)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("title", title).Msg("movie lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, movie, http.StatusOK)
}
