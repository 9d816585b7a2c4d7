package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/strobe/internal/service"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/internal/utils"
	"github.com/MKhiriev/strobe/internal/validators"
	"github.com/MKhiriev/strobe/models"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order: the first entry matched by errors.Is
// wins. Credential and token failures all share one generic response.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{service.ErrInvalidCredentials, errorResponse{http.StatusBadRequest, msgIncorrectCredentials}},
	{service.ErrMissingToken, errorResponse{http.StatusUnauthorized, msgAuthenticationFailed}},
	{service.ErrInvalidToken, errorResponse{http.StatusUnauthorized, msgAuthenticationFailed}},
	{service.ErrTokenIsExpired, errorResponse{http.StatusUnauthorized, msgAuthenticationFailed}},
	{service.ErrPrincipalNotFound, errorResponse{http.StatusUnauthorized, msgAuthenticationFailed}},
	{service.ErrPermissionDenied, errorResponse{http.StatusForbidden, msgPermissionDenied}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusUnprocessableEntity, msgInvalidJSON}},

	{store.ErrLoginAlreadyExists, errorResponse{http.StatusBadRequest, msgUsernameTaken}},
	{store.ErrNoUserWasFound, errorResponse{http.StatusNotFound, msgNoSuchUser}},
	{store.ErrMovieNotFound, errorResponse{http.StatusNotFound, msgNoSuchMovie}},

	{service.ErrStoreUnavailable, errorResponse{http.StatusInternalServerError, msgInternalError}},
	{service.ErrTokenCreationFailed, errorResponse{http.StatusInternalServerError, msgInternalError}},
}

func responseFromError(err error) errorResponse {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, msgInternalError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError renders err as a JSON body. Validation failures are listed
// field by field.
func writeError(w http.ResponseWriter, err error) {
	var verrs validators.ValidationErrors
	if errors.As(err, &verrs) {
		body := models.ValidationErrorsResponse{Errors: make([]models.ValidationError, 0, len(verrs))}
		for _, fe := range verrs {
			body.Errors = append(body.Errors, models.ValidationError{Param: fe.Param, Msg: fe.Msg})
		}
		utils.WriteJSON(w, body, http.StatusUnprocessableEntity)
		return
	}

	resp := responseFromError(err)
	utils.WriteJSON(w, models.MessageResponse{Message: resp.message}, resp.status)
}
