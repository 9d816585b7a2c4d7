package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/mock"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type userSvcMocks struct {
	users  *mock.MockUserRepository
	movies *mock.MockMovieRepository
	hasher *mock.MockPasswordHasher
}

func newTestUserSvc(t *testing.T) (UserService, userSvcMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := userSvcMocks{
		users:  mock.NewMockUserRepository(ctrl),
		movies: mock.NewMockMovieRepository(ctrl),
		hasher: mock.NewMockPasswordHasher(ctrl),
	}
	return NewUserService(m.users, m.movies, m.hasher, logger.Nop()), m
}

var alice = models.LeanUser{UserID: "u-1", Username: "alice"}

func strPtr(s string) *string { return &s }

func TestUserService_ListUsers(t *testing.T) {
	svc, m := newTestUserSvc(t)
	users := []models.User{{UserID: "u-1", Username: "alice"}, {UserID: "u-2", Username: "bob"}}
	m.users.EXPECT().ListUsers(gomock.Any()).Return(users, nil)

	got, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users, got)
}

func TestUserService_ListUsers_StoreFailure(t *testing.T) {
	svc, m := newTestUserSvc(t)
	m.users.EXPECT().ListUsers(gomock.Any()).Return(nil, errors.New("connection reset"))

	_, err := svc.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestUserService_GetUser(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "found"},
		{name: "not found", repoErr: store.ErrNoUserWasFound, wantErr: store.ErrNoUserWasFound},
		{name: "store down", repoErr: errors.New("timeout"), wantErr: ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestUserSvc(t)
			m.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
				Return(models.User{UserID: "u-1", Username: "alice"}, tt.repoErr)

			user, err := svc.GetUser(context.Background(), "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u-1", user.UserID)
		})
	}
}

func TestUserService_UpdateUser_RehashesPassword(t *testing.T) {
	svc, m := newTestUserSvc(t)
	req := models.UpdateUserRequest{Password: strPtr("n3wsecret"), Email: strPtr("alice@new.example")}

	gomock.InOrder(
		m.hasher.EXPECT().Hash(gomock.Any(), "n3wsecret").Return("new-digest", nil),
		m.users.EXPECT().UpdateUser(gomock.Any(), models.UserUpdate{
			UserID:       "u-1",
			Email:        strPtr("alice@new.example"),
			PasswordHash: strPtr("new-digest"),
		}).Return(models.User{UserID: "u-1", Username: "alice", Email: "alice@new.example"}, nil),
	)

	user, err := svc.UpdateUser(context.Background(), alice, "alice", req)
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example", user.Email)
}

func TestUserService_UpdateUser_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		actor    models.LeanUser
		username string
		req      models.UpdateUserRequest
		wantErr  error
	}{
		{name: "other user", actor: alice, username: "bob", req: models.UpdateUserRequest{Email: strPtr("x@y.z")}, wantErr: ErrPermissionDenied},
		{name: "anonymous actor", actor: models.LeanUser{Username: "alice"}, username: "alice", wantErr: ErrPermissionDenied},
		{name: "bad email", actor: alice, username: "alice", req: models.UpdateUserRequest{Email: strPtr("nope")}, wantErr: ErrInvalidDataProvided},
		{name: "bad username", actor: alice, username: "alice", req: models.UpdateUserRequest{Username: strPtr("al ice")}, wantErr: ErrInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestUserSvc(t)
			_, err := svc.UpdateUser(context.Background(), tt.actor, tt.username, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserService_UpdateUser_UsernameTaken(t *testing.T) {
	svc, m := newTestUserSvc(t)
	m.users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.UpdateUser(context.Background(), alice, "alice", models.UpdateUserRequest{Username: strPtr("bob")})
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestUserService_DeleteUser(t *testing.T) {
	svc, m := newTestUserSvc(t)
	m.users.EXPECT().DeleteUser(gomock.Any(), "alice").Return(nil)

	require.NoError(t, svc.DeleteUser(context.Background(), alice, "alice"))
}

func TestUserService_DeleteUser_Rejections(t *testing.T) {
	svc, m := newTestUserSvc(t)
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), alice, "bob"), ErrPermissionDenied)

	m.users.EXPECT().DeleteUser(gomock.Any(), "alice").Return(store.ErrNoUserWasFound)
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), alice, "alice"), store.ErrNoUserWasFound)
}

func TestUserService_AddFavoriteMovie(t *testing.T) {
	svc, m := newTestUserSvc(t)
	updated := models.User{UserID: "u-1", Username: "alice", FavoriteMovies: []string{"m-1"}}

	gomock.InOrder(
		m.movies.EXPECT().FindMovieByID(gomock.Any(), "m-1").Return(models.Movie{MovieID: "m-1"}, nil),
		m.users.EXPECT().AddFavoriteMovie(gomock.Any(), "u-1", "m-1").Return(nil),
		m.users.EXPECT().FindUserByID(gomock.Any(), "u-1").Return(updated, nil),
	)

	user, err := svc.AddFavoriteMovie(context.Background(), alice, "alice", "m-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m-1"}, user.FavoriteMovies)
}

func TestUserService_AddFavoriteMovie_Rejections(t *testing.T) {
	svc, m := newTestUserSvc(t)

	_, err := svc.AddFavoriteMovie(context.Background(), alice, "bob", "m-1")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	m.movies.EXPECT().FindMovieByID(gomock.Any(), "m-404").Return(models.Movie{}, store.ErrMovieNotFound)
	_, err = svc.AddFavoriteMovie(context.Background(), alice, "alice", "m-404")
	assert.ErrorIs(t, err, store.ErrMovieNotFound)
}

func TestUserService_RemoveFavoriteMovie(t *testing.T) {
	svc, m := newTestUserSvc(t)

	gomock.InOrder(
		m.users.EXPECT().RemoveFavoriteMovie(gomock.Any(), "u-1", "m-1").Return(nil),
		m.users.EXPECT().FindUserByID(gomock.Any(), "u-1").
			Return(models.User{UserID: "u-1", Username: "alice", FavoriteMovies: []string{}}, nil),
	)

	user, err := svc.RemoveFavoriteMovie(context.Background(), alice, "alice", "m-1")
	require.NoError(t, err)
	assert.Empty(t, user.FavoriteMovies)
}

func TestUserService_RemoveFavoriteMovie_StoreFailure(t *testing.T) {
	svc, m := newTestUserSvc(t)
	m.users.EXPECT().RemoveFavoriteMovie(gomock.Any(), "u-1", "m-1").Return(errors.New("deadlock"))

	_, err := svc.RemoveFavoriteMovie(context.Background(), alice, "alice", "m-1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
