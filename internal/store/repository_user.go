package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/models"
	"github.com/Masterminds/squirrel"
)

// userRepository is the SQL implementation of [UserRepository]. It works
// against the "users" and "user_favorite_movies" tables on either supported
// dialect.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record. CreatedAt is stamped here when the
// caller left it empty.
//
// Error handling:
//   - unique violation on username → [ErrLoginAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			log.Debug().Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("username is taken")
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	user.FavoriteMovies = []string{}
	return user, nil
}

// FindUserByUsername retrieves the user whose username equals username
// exactly, together with its ordered favorites.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, squirrel.Eq{"username": username})
}

// FindUserByID retrieves the user with the given identifier, together with
// its ordered favorites.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUser(ctx, squirrel.Eq{"id": userID})
}

func (r *userRepository) findUser(ctx context.Context, where squirrel.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder, where)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.withRetry(ctx, func() error {
		return scanUser(r.db.QueryRowContext(ctx, query, args...), &user)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	favorites, err := r.favorites(ctx, user.UserID)
	if err != nil {
		return models.User{}, err
	}
	user.FavoriteMovies = favorites

	return user, nil
}

func (r *userRepository) favorites(ctx context.Context, userID string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFavoritesQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.favorites").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.favorites").Str("user_id", userID).Msg("error querying favorites")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	favorites := make([]string, 0)
	for rows.Next() {
		var movieID string
		if err = rows.Scan(&movieID); err != nil {
			log.Err(err).Str("func", "*userRepository.favorites").Msg("error scanning favorite")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		favorites = append(favorites, movieID)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.favorites").Msg("error iterating favorites")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return favorites, nil
}

// ListUsers returns all users ordered by username, each with its ordered
// favorites. Favorites of all users are fetched in a single query.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllUsersQuery(r.db.builder)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error querying users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	index := make(map[string]int)
	for rows.Next() {
		var user models.User
		if err = scanUser(rows, &user); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning user")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		user.FavoriteMovies = []string{}
		index[user.UserID] = len(users)
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error iterating users")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(users) == 0 {
		return users, nil
	}

	query, args, err = buildSelectAllFavoritesQuery(r.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	favRows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error querying favorites")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer favRows.Close()

	for favRows.Next() {
		var userID, movieID string
		if err = favRows.Scan(&userID, &movieID); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning favorite")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if i, ok := index[userID]; ok {
			users[i].FavoriteMovies = append(users[i].FavoriteMovies, movieID)
		}
	}
	if err = favRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser applies update and returns the stored record afterwards.
// An empty update only re-reads the user.
//
// Error handling:
//   - no row with update.UserID → [ErrNoUserWasFound].
//   - new username taken → [ErrLoginAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.FindUserByID(ctx, update.UserID)
	}

	query, args, err := buildUpdateUserQuery(r.db.builder, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Str("user_id", update.UserID).Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	return r.FindUserByID(ctx, update.UserID)
}

// DeleteUser removes the user and its favorites in one transaction.
// Favorites are deleted explicitly so the result does not depend on
// foreign key enforcement being enabled.
func (r *userRepository) DeleteUser(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	user, err := r.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := buildDeleteAllFavoritesQuery(r.db.builder, user.UserID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting favorites")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	query, args, err = buildDeleteUserQuery(r.db.builder, user.UserID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNoUserWasFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// AddFavoriteMovie appends movieID at the end of the user's favorites
// unless it is already there.
func (r *userRepository) AddFavoriteMovie(ctx context.Context, userID, movieID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.AddFavoriteMovie").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := buildCountFavoriteQuery(r.db.builder, userID, movieID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	var count int64
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.AddFavoriteMovie").Msg("error checking favorite")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if count > 0 {
		return tx.Commit()
	}

	query, args, err = buildMaxFavoritePositionQuery(r.db.builder, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	var position int64
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&position); err != nil {
		log.Err(err).Str("func", "*userRepository.AddFavoriteMovie").Msg("error reading last favorite position")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err = buildInsertFavoriteQuery(r.db.builder, userID, movieID, position+1)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		// a concurrent add of the same movie won the race
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return nil
		}
		log.Err(err).Str("func", "*userRepository.AddFavoriteMovie").Msg("error inserting favorite")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.AddFavoriteMovie").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// RemoveFavoriteMovie deletes movieID from the user's favorites.
func (r *userRepository) RemoveFavoriteMovie(ctx context.Context, userID, movieID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteFavoriteQuery(r.db.builder, userID, movieID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.RemoveFavoriteMovie").Msg("error deleting favorite")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *models.User) error {
	var birthday sql.NullTime
	if err := row.Scan(&user.UserID, &user.Username, &user.PasswordHash, &user.Email, &birthday, &user.CreatedAt); err != nil {
		return err
	}
	if birthday.Valid {
		b := birthday.Time
		user.Birthday = &b
	}
	return nil
}
