package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/service"
	"github.com/MKhiriev/strobe/internal/utils"
	"github.com/MKhiriev/strobe/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.MessageResponse{Message: msgInvalidJSON}, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("registration failed")
		writeError(w, err)
		return
	}

	log.Info().Str("user_id", registeredUser.UserID).Msg("user registered")
	utils.WriteJSON(w, registeredUser.Lean(), http.StatusCreated)
}

// login checks the submitted credentials and issues an access token.
//
// Unknown usernames, wrong passwords and incomplete credentials all produce
// the same 400 body, which echoes the username but never the password.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeLoginFailure(w, creds.Username)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrInvalidDataProvided) {
			log.Info().Err(err).Str("username", creds.Username).Msg("login rejected")
			writeLoginFailure(w, creds.Username)
			return
		}
		log.Err(err).Str("username", creds.Username).Msg("unexpected error occurred during user login")
		writeError(w, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Str("user_id", foundUser.UserID).Msg("creation of token failed")
		writeError(w, err)
		return
	}

	log.Debug().Str("user_id", foundUser.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("%s %s", bearerScheme, token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{User: foundUser.Lean(), Token: token.SignedString}, http.StatusOK)
}

func writeLoginFailure(w http.ResponseWriter, username string) {
	utils.WriteJSON(w, models.LoginFailure{
		Message: msgIncorrectCredentials,
		User:    models.LoginEcho{Username: username},
	}, http.StatusBadRequest)
}
