package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/strobe/internal/config"
	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/service"
	"github.com/MKhiriev/strobe/internal/utils"
	"github.com/MKhiriev/strobe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid bearer token", header: "Bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "scheme is case-insensitive", header: "bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "surrounding spaces trimmed", header: "Bearer   my-jwt-token ", wantToken: "my-jwt-token"},
		{name: "empty header", header: "", wantErr: ErrEmptyAuthorizationHeader},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "raw token", header: "my-jwt-token", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer  ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, service.ErrMissingToken)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// TestAuth_FailuresLookTheSame checks that every kind of authentication
// failure yields the same status and body.
func TestAuth_FailuresLookTheSame(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		authorizeErr error
	}{
		{name: "no header"},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "missing token", header: "Bearer "},
		{name: "invalid token", header: "Bearer " + testToken, authorizeErr: fmt.Errorf("%w: signature is invalid", service.ErrInvalidToken)},
		{name: "expired token", header: "Bearer " + testToken, authorizeErr: fmt.Errorf("%w: token has expired", service.ErrTokenIsExpired)},
		{name: "principal deleted", header: "Bearer " + testToken, authorizeErr: service.ErrPrincipalNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs, m := newTestServices(t)
			h := NewHandler(svcs, config.Server{}, logger.Nop())
			if tt.authorizeErr != nil {
				m.auth.EXPECT().Authorize(gomock.Any(), testToken).Return(models.User{}, tt.authorizeErr)
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { nextCalled = true })

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rec, req)

			assert.False(t, nextCalled)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"message":"authentication failed"}`, rec.Body.String())
		})
	}
}

func TestAuth_StoreUnavailable(t *testing.T) {
	router, m := newTestRouter(t, config.Server{})
	m.auth.EXPECT().Authorize(gomock.Any(), testToken).
		Return(models.User{}, fmt.Errorf("principal lookup failed: %w: %w", service.ErrStoreUnavailable, errors.New("i/o timeout")))

	rec := doRequest(router, http.MethodGet, "/users", "", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Something went wrong"}`, rec.Body.String())
}

func TestAuth_StoresLeanPrincipalInContext(t *testing.T) {
	svcs, m := newTestServices(t)
	h := NewHandler(svcs, config.Server{}, logger.Nop())
	m.expectAuthorized()

	var got models.LeanUser
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = utils.GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, ok)
	assert.Equal(t, aliceUser.Lean(), got)
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	routes := []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/alice"},
		{http.MethodPut, "/users/alice"},
		{http.MethodDelete, "/users/alice"},
		{http.MethodPost, "/users/alice/movies/m-1"},
		{http.MethodDelete, "/users/alice/movies/m-1"},
		{http.MethodGet, "/movies"},
		{http.MethodGet, "/movies/Inception"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			router, _ := newTestRouter(t, config.Server{})
			rec := doRequest(router, rt.method, rt.path, "", false)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
