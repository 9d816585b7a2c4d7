package service

import (
	"context"

	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/models"
)

type movieService struct {
	movieRepository store.MovieRepository
	logger          *logger.Logger
}

func NewMovieService(movieRepository store.MovieRepository, logger *logger.Logger) MovieService {
	return &movieService{
		movieRepository: movieRepository,
		logger:          logger,
	}
}

func (s *movieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	movies, err := s.movieRepository.ListMovies(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing movies failed")
		return nil, wrapStoreError("listing movies failed", err)
	}
	return movies, nil
}

func (s *movieService) GetMovieByTitle(ctx context.Context, title string) (models.Movie, error) {
	movie, err := s.movieRepository.FindMovieByTitle(ctx, title)
	if err != nil {
		return models.Movie{}, wrapStoreError("movie search by title failed", err)
	}
	return movie, nil
}
