package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/internal/utils"
	"github.com/MKhiriev/strobe/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("listing users failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.LeanUsers(users), http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	username := pathParam(r, "username")

	user, err := h.services.UserService.GetUser(r.Context(), username)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("username", username).Msg("user lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user.Lean(), http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	username := pathParam(r, "username")

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.MessageResponse{Message: msgInvalidJSON}, http.StatusBadRequest)
		return
	}

	actor, _ := utils.GetUserFromContext(r.Context())
	user, err := h.services.UserService.UpdateUser(r.Context(), actor, username, req)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user.Lean(), http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	username := pathParam(r, "username")

	actor, _ := utils.GetUserFromContext(r.Context())
	err := h.services.UserService.DeleteUser(r.Context(), actor, username)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		log.Info().Str("username", username).Msg("user to delete not found")
		utils.WriteJSON(w, models.MessageResponse{Message: msgUserNotFound}, http.StatusBadRequest)
		return
	case err != nil:
		log.Err(err).Str("username", username).Msg("user deletion failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "%s was deleted.", username)
}

func (h *Handler) addFavoriteMovie(w http.ResponseWriter, r *http.Request) {
	username := pathParam(r, "username")
	movieID := pathParam(r, "movieID")

	actor, _ := utils.GetUserFromContext(r.Context())
	user, err := h.services.UserService.AddFavoriteMovie(r.Context(), actor, username, movieID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("movie_id", movieID).Msg("adding favorite failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user.Lean(), http.StatusOK)
}

func (h *Handler) removeFavoriteMovie(w http.ResponseWriter, r *http.Request) {
	username := pathParam(r, "username")
	movieID := pathParam(r, "movieID")

	actor, _ := utils.GetUserFromContext(r.Context())
	user, err := h.services.UserService.RemoveFavoriteMovie(r.Context(), actor, username, movieID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("movie_id", movieID).Msg("removing favorite failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user.Lean(), http.StatusOK)
}

// pathParam returns the decoded value of a chi URL parameter. chi routes on
// r.URL.RawPath when it is set, and only then is the parameter still escaped.
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}
