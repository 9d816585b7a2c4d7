package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/strobe/internal/config"
	"github.com/MKhiriev/strobe/internal/service"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestListUsers(t *testing.T) {
	router, m := newTestRouter(t, config.Server{})
	m.expectAuthorized()

	bob := models.User{UserID: "u-bob", Username: "bob", PasswordHash: "bob-digest"}
	m.users.EXPECT().ListUsers(gomock.Any()).Return([]models.User{aliceUser, bob}, nil)

	rec := doRequest(router, http.MethodGet, "/users", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.LeanUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []models.LeanUser{aliceUser.Lean(), bob.Lean()}, body)
	assert.NotContains(t, rec.Body.String(), "bob-digest")
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "found",
			wantStatus: http.StatusOK,
			wantBody:   `{"_id":"u-alice","Username":"alice","Email":"alice@example.com","FavoriteMovies":[]}`,
		},
		{
			name:       "not found",
			err:        fmt.Errorf("user search by username failed: %w", store.ErrNoUserWasFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"No such user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, config.Server{})
			m.expectAuthorized()
			m.users.EXPECT().GetUser(gomock.Any(), "alice").Return(aliceUser, tt.err)

			rec := doRequest(router, http.MethodGet, "/users/alice", "", true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestUpdateUser(t *testing.T) {
	router, m := newTestRouter(t, config.Server{})
	m.expectAuthorized()

	updated := aliceUser
	updated.Email = "alice@new.example"
	m.users.EXPECT().
		UpdateUser(gomock.Any(), aliceUser.Lean(), "alice", gomock.Any()).
		DoAndReturn(func(_ any, _ models.LeanUser, _ string, req models.UpdateUserRequest) (models.User, error) {
			require.NotNil(t, req.Email)
			assert.Equal(t, "alice@new.example", *req.Email)
			assert.Nil(t, req.Password)
			return updated, nil
		})

	rec := doRequest(router, http.MethodPut, "/users/alice", `{"Email":"alice@new.example"}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@new.example")
}

func TestUpdateUser_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "someone else", err: service.ErrPermissionDenied, wantStatus: http.StatusForbidden, wantBody: `{"message":"Permission denied"}`},
		{name: "username taken", err: store.ErrLoginAlreadyExists, wantStatus: http.StatusBadRequest, wantBody: `{"message":"Username already exists"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, config.Server{})
			m.expectAuthorized()
			m.users.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), "bob", gomock.Any()).Return(models.User{}, tt.err)

			rec := doRequest(router, http.MethodPut, "/users/bob", `{"Username":"bob2"}`, true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestDeleteUser(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "deleted", wantStatus: http.StatusOK, wantBody: "alice was deleted."},
		{name: "not found", err: store.ErrNoUserWasFound, wantStatus: http.StatusBadRequest, wantBody: `{"message":"User not found"}`},
		{name: "someone else", err: service.ErrPermissionDenied, wantStatus: http.StatusForbidden, wantBody: `{"message":"Permission denied"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t, config.Server{})
			m.expectAuthorized()
			m.users.EXPECT().DeleteUser(gomock.Any(), aliceUser.Lean(), "alice").Return(tt.err)

			rec := doRequest(router, http.MethodDelete, "/users/alice", "", true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestFavoriteMovies(t *testing.T) {
	withFavorite := aliceUser
	withFavorite.FavoriteMovies = []string{"m-1"}

	t.Run("add", func(t *testing.T) {
		router, m := newTestRouter(t, config.Server{})
		m.expectAuthorized()
		m.users.EXPECT().AddFavoriteMovie(gomock.Any(), aliceUser.Lean(), "alice", "m-1").Return(withFavorite, nil)

		rec := doRequest(router, http.MethodPost, "/users/alice/movies/m-1", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"FavoriteMovies":["m-1"]`)
	})

	t.Run("add unknown movie", func(t *testing.T) {
		router, m := newTestRouter(t, config.Server{})
		m.expectAuthorized()
		m.users.EXPECT().AddFavoriteMovie(gomock.Any(), gomock.Any(), "alice", "m-404").Return(models.User{}, store.ErrMovieNotFound)

		rec := doRequest(router, http.MethodPost, "/users/alice/movies/m-404", "", true)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"No such movie"}`, rec.Body.String())
	})

	t.Run("remove", func(t *testing.T) {
		router, m := newTestRouter(t, config.Server{})
		m.expectAuthorized()
		m.users.EXPECT().RemoveFavoriteMovie(gomock.Any(), aliceUser.Lean(), "alice", "m-1").Return(aliceUser, nil)

		rec := doRequest(router, http.MethodDelete, "/users/alice/movies/m-1", "", true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"FavoriteMovies":[]`)
	})
}
