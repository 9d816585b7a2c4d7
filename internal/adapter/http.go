package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/utils"
	"github.com/MKhiriev/strobe/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// address may omit the scheme ("localhost:8080"); http is assumed.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.LeanUser, error) {
	var user models.LeanUser

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post("/users")
	if err != nil {
		return models.LeanUser{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LeanUser{}, err
	}

	return user, nil
}

// Login posts the credentials to POST /login and keeps the token from the
// response body.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.LeanUser, error) {
	var result models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&result).
		Post("/login")
	if err != nil {
		return models.LeanUser{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LeanUser{}, err
	}
	if result.Token == "" {
		return models.LeanUser{}, ErrNoToken
	}

	h.SetToken(result.Token)
	h.logger.Debug().Str("username", result.User.Username).Msg("logged in")

	return result.User, nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context, username string) (models.LeanUser, error) {
	var user models.LeanUser
	err := h.authorized(ctx, &user).get("/users/" + url.PathEscape(username))
	return user, err
}

func (h *httpServerAdapter) ListMovies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	err := h.authorized(ctx, &movies).get("/movies")
	return movies, err
}

func (h *httpServerAdapter) GetMovie(ctx context.Context, title string) (models.Movie, error) {
	var movie models.Movie
	err := h.authorized(ctx, &movie).get("/movies/" + url.PathEscape(title))
	return movie, err
}

func (h *httpServerAdapter) AddFavoriteMovie(ctx context.Context, username, movieID string) (models.LeanUser, error) {
	var user models.LeanUser
	err := h.authorized(ctx, &user).post(favoritePath(username, movieID))
	return user, err
}

func (h *httpServerAdapter) RemoveFavoriteMovie(ctx context.Context, username, movieID string) (models.LeanUser, error) {
	var user models.LeanUser
	err := h.authorized(ctx, &user).delete(favoritePath(username, movieID))
	return user, err
}

func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func favoritePath(username, movieID string) string {
	return "/users/" + url.PathEscape(username) + "/movies/" + url.PathEscape(movieID)
}

// authorizedRequest is a request carrying the stored bearer token whose
// JSON response is decoded into result.
type authorizedRequest struct {
	adapter *httpServerAdapter
	ctx     context.Context
	result  any
}

func (h *httpServerAdapter) authorized(ctx context.Context, result any) authorizedRequest {
	return authorizedRequest{adapter: h, ctx: ctx, result: result}
}

func (r authorizedRequest) get(path string) error    { return r.do(http.MethodGet, path) }
func (r authorizedRequest) post(path string) error   { return r.do(http.MethodPost, path) }
func (r authorizedRequest) delete(path string) error { return r.do(http.MethodDelete, path) }

func (r authorizedRequest) do(method, path string) error {
	token := r.adapter.Token()
	if token == "" {
		return fmt.Errorf("%w: not logged in", ErrUnauthorized)
	}

	resp, err := r.adapter.client.R().
		SetContext(r.ctx).
		SetAuthToken(token).
		SetResult(r.result).
		Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	return mapHTTPError(resp)
}
