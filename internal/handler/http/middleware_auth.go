package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/service"
	"github.com/MKhiriev/strobe/internal/utils"
	"github.com/MKhiriev/strobe/models"
)

const bearerScheme = "Bearer"

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// The token from the "Authorization" header is passed to
// [service.AuthService.Authorize], which verifies it and re-reads the
// principal from the store. On success the redacted principal is stored in
// the request context under [utils.UserCtxKey].
//
// Every authentication failure gets the same 401 response; the reason is
// only logged. A store failure during the principal lookup is a 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Info().Err(err).Msg("request rejected")
			writeAuthFailure(w)
			return
		}

		user, err := h.services.AuthService.Authorize(r.Context(), tokenString)
		if err != nil {
			if errors.Is(err, service.ErrStoreUnavailable) {
				log.Err(err).Msg("principal lookup failed")
				writeError(w, err)
				return
			}
			log.Info().Err(err).Msg("request rejected")
			writeAuthFailure(w)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserCtxKey, user.Lean())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthFailure(w http.ResponseWriter) {
	utils.WriteJSON(w, models.MessageResponse{Message: msgAuthenticationFailed}, http.StatusUnauthorized)
}

// getTokenFromAuthHeader extracts the token from an
// "Authorization: Bearer <token>" header value. The scheme is matched
// case-insensitively. Every failure wraps [service.ErrMissingToken].
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("%w: %w", service.ErrMissingToken, ErrEmptyAuthorizationHeader)
	}

	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", fmt.Errorf("%w: %w", service.ErrMissingToken, ErrInvalidAuthorizationHeader)
	}

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", fmt.Errorf("%w: %w", service.ErrMissingToken, ErrEmptyToken)
	}

	return tokenString, nil
}
