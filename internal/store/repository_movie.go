package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/models"
	"github.com/Masterminds/squirrel"
)

// movieRepository is the SQL implementation of [MovieRepository].
// Actors are stored as a JSON array in a text column so the schema is the
// same on every dialect.
type movieRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewMovieRepository constructs a [MovieRepository] backed by db.
func NewMovieRepository(db *DB, logger *logger.Logger) MovieRepository {
	logger.Debug().Msg("creating movie repository")
	return &movieRepository{
		db:     db,
		logger: logger,
	}
}

// ListMovies returns the whole catalog ordered by title.
func (r *movieRepository) ListMovies(ctx context.Context) ([]models.Movie, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllMoviesQuery(r.db.builder)
	if err != nil {
		log.Err(err).Str("func", "*movieRepository.ListMovies").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var movies []models.Movie
	err = r.db.withRetry(ctx, func() error {
		movies, err = r.queryMovies(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*movieRepository.ListMovies").Msg("error listing movies")
		return nil, err
	}

	return movies, nil
}

// FindMovieByTitle returns the movie with exactly the given title.
func (r *movieRepository) FindMovieByTitle(ctx context.Context, title string) (models.Movie, error) {
	return r.findMovie(ctx, squirrel.Eq{"title": title})
}

// FindMovieByID returns the movie with the given identifier.
func (r *movieRepository) FindMovieByID(ctx context.Context, movieID string) (models.Movie, error) {
	return r.findMovie(ctx, squirrel.Eq{"id": movieID})
}

func (r *movieRepository) findMovie(ctx context.Context, where squirrel.Eq) (models.Movie, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectMovieQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", "*movieRepository.findMovie").Msg("error building query")
		return models.Movie{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var movie models.Movie
	err = r.db.withRetry(ctx, func() error {
		return scanMovie(r.db.QueryRowContext(ctx, query, args...), &movie)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movie{}, ErrMovieNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*movieRepository.findMovie").Msg("error querying movie")
		return models.Movie{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return movie, nil
}

func (r *movieRepository) queryMovies(ctx context.Context, query string, args ...any) ([]models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		var movie models.Movie
		if err = scanMovie(rows, &movie); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		movies = append(movies, movie)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return movies, nil
}

func scanMovie(row rowScanner, movie *models.Movie) error {
	var actors sql.NullString
	err := row.Scan(
		&movie.MovieID,
		&movie.Title,
		&movie.Description,
		&movie.Genre.Name,
		&movie.Genre.Description,
		&movie.Director.Name,
		&movie.Director.Bio,
		&actors,
		&movie.ImagePath,
		&movie.Featured,
	)
	if err != nil {
		return err
	}

	movie.Actors = []string{}
	if actors.Valid && actors.String != "" {
		if err = json.Unmarshal([]byte(actors.String), &movie.Actors); err != nil {
			return fmt.Errorf("malformed actors list of movie %s: %w", movie.MovieID, err)
		}
	}

	return nil
}
