package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/strobe/internal/config"
	"github.com/MKhiriev/strobe/internal/crypto"
	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/service"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/internal/workers"
	"github.com/MKhiriev/strobe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const inceptionID = "0190a3f4-6a2b-7c11-9d2e-1f3a5b7c9d02"

// newAPIServer runs the whole stack over an in-memory SQLite database.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	storages, err := store.NewStorages(ctx, config.Storage{
		DB: config.DB{DSN: "file:" + t.Name() + "?mode=memory&cache=shared"},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	hasher, err := crypto.NewBcryptHasher(bcrypt.MinCost, workers.NewPool(4))
	require.NoError(t, err)

	cfg := config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "api-test-key",
			TokenIssuer:   "strobe",
			TokenDuration: 7 * 24 * time.Hour,
			Version:       "test",
		},
	}
	services, err := service.NewServices(storages, hasher, cfg, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(services, config.Server{RequestTimeout: 10 * time.Second}, logger.Nop()).Init())
	t.Cleanup(srv.Close)
	return srv
}

type apiResponse struct {
	status int
	header http.Header
	body   string
}

func call(t *testing.T, srv *httptest.Server, method, path, token, body string) apiResponse {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	return apiResponse{status: resp.StatusCode, header: resp.Header, body: sb.String()}
}

func TestAPI_AccountLifecycle(t *testing.T) {
	srv := newAPIServer(t)

	// register
	resp := call(t, srv, http.MethodPost, "/users", "", `{"Username":"alice","Password":"secret123","Email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.status, resp.body)
	assert.NotContains(t, strings.ToLower(resp.body), "password")

	resp = call(t, srv, http.MethodPost, "/users", "", `{"Username":"alice","Password":"other","Email":"a2@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"message":"Username already exists"}`, resp.body)

	// login
	resp = call(t, srv, http.MethodPost, "/login", "", `{"Username":"alice","Password":"secret123"}`)
	require.Equal(t, http.StatusOK, resp.status, resp.body)
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(resp.body), &login))
	assert.Equal(t, "alice", login.User.Username)
	assert.Equal(t, "Bearer "+login.Token, resp.header.Get("Authorization"))
	assert.NotContains(t, strings.ToLower(resp.body), "password")
	token := login.Token

	// protected access
	resp = call(t, srv, http.MethodGet, "/movies", token, "")
	require.Equal(t, http.StatusOK, resp.status)
	var movies []models.Movie
	require.NoError(t, json.Unmarshal([]byte(resp.body), &movies))
	assert.Len(t, movies, 4)

	resp = call(t, srv, http.MethodGet, "/movies/Spirited%20Away", token, "")
	assert.Equal(t, http.StatusOK, resp.status)

	// favorites keep insertion order and stay unique
	resp = call(t, srv, http.MethodPost, "/users/alice/movies/"+inceptionID, token, "")
	require.Equal(t, http.StatusOK, resp.status, resp.body)
	resp = call(t, srv, http.MethodPost, "/users/alice/movies/"+inceptionID, token, "")
	require.Equal(t, http.StatusOK, resp.status, resp.body)
	var profile models.LeanUser
	require.NoError(t, json.Unmarshal([]byte(resp.body), &profile))
	assert.Equal(t, []string{inceptionID}, profile.FavoriteMovies)

	resp = call(t, srv, http.MethodPost, "/users/alice/movies/no-such-movie", token, "")
	assert.Equal(t, http.StatusNotFound, resp.status)

	resp = call(t, srv, http.MethodDelete, "/users/alice/movies/"+inceptionID, token, "")
	require.Equal(t, http.StatusOK, resp.status)
	require.NoError(t, json.Unmarshal([]byte(resp.body), &profile))
	assert.Empty(t, profile.FavoriteMovies)

	// the token outlives the account but no longer authorizes anything
	resp = call(t, srv, http.MethodDelete, "/users/alice", token, "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "alice was deleted.", resp.body)

	resp = call(t, srv, http.MethodGet, "/users/alice", token, "")
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.JSONEq(t, `{"message":"authentication failed"}`, resp.body)
}

// TestAPI_LoginFailuresAreIndistinguishable compares a wrong password for an
// existing account with the same login after the account is gone.
func TestAPI_LoginFailuresAreIndistinguishable(t *testing.T) {
	srv := newAPIServer(t)

	resp := call(t, srv, http.MethodPost, "/users", "", `{"Username":"alice","Password":"secret123","Email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.status, resp.body)

	wrongPassword := call(t, srv, http.MethodPost, "/login", "", `{"Username":"alice","Password":"wrong"}`)

	resp = call(t, srv, http.MethodPost, "/login", "", `{"Username":"alice","Password":"secret123"}`)
	require.Equal(t, http.StatusOK, resp.status, resp.body)
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(resp.body), &login))
	resp = call(t, srv, http.MethodDelete, "/users/alice", login.Token, "")
	require.Equal(t, http.StatusOK, resp.status, resp.body)

	unknownUser := call(t, srv, http.MethodPost, "/login", "", `{"Username":"alice","Password":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, wrongPassword.status)
	assert.Equal(t, wrongPassword.status, unknownUser.status)
	assert.Equal(t, wrongPassword.body, unknownUser.body)
	assert.JSONEq(t, `{"message":"Incorrect username or password","user":{"Username":"alice"}}`, unknownUser.body)
	assert.Empty(t, wrongPassword.header.Get("Authorization"))
	assert.Empty(t, unknownUser.header.Get("Authorization"))
}

func TestAPI_TokenFailures(t *testing.T) {
	srv := newAPIServer(t)

	resp := call(t, srv, http.MethodPost, "/users", "", `{"Username":"alice","Password":"secret123","Email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.status, resp.body)
	resp = call(t, srv, http.MethodPost, "/login", "", `{"Username":"alice","Password":"secret123"}`)
	require.Equal(t, http.StatusOK, resp.status, resp.body)
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(resp.body), &login))

	tampered := []byte(login.Token)
	last := len(tampered) - 2
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	for name, token := range map[string]string{
		"missing":  "",
		"garbage":  "garbage",
		"tampered": string(tampered),
	} {
		t.Run(name, func(t *testing.T) {
			resp := call(t, srv, http.MethodGet, "/users", token, "")
			assert.Equal(t, http.StatusUnauthorized, resp.status)
			assert.JSONEq(t, `{"message":"authentication failed"}`, resp.body)
		})
	}
}
