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

func TestMovieService_ListMovies(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockMovieRepository(ctrl)
	svc := NewMovieService(repo, logger.Nop())

	movies := []models.Movie{{MovieID: "m-1", Title: "Inception"}}
	repo.EXPECT().ListMovies(gomock.Any()).Return(movies, nil)

	got, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, movies, got)

	repo.EXPECT().ListMovies(gomock.Any()).Return(nil, errors.New("connection refused"))
	_, err = svc.ListMovies(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestMovieService_GetMovieByTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockMovieRepository(ctrl)
	svc := NewMovieService(repo, logger.Nop())

	repo.EXPECT().FindMovieByTitle(gomock.Any(), "Inception").Return(models.Movie{MovieID: "m-1", Title: "Inception"}, nil)
	movie, err := svc.GetMovieByTitle(context.Background(), "Inception")
	require.NoError(t, err)
	assert.Equal(t, "m-1", movie.MovieID)

	repo.EXPECT().FindMovieByTitle(gomock.Any(), "Nope").Return(models.Movie{}, store.ErrMovieNotFound)
	_, err = svc.GetMovieByTitle(context.Background(), "Nope")
	assert.ErrorIs(t, err, store.ErrMovieNotFound)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}
