package store

import (
	"github.com/MKhiriev/strobe/models"
	"github.com/Masterminds/squirrel"
)

const (
	favoritesTable = "user_favorite_movies"
)

var (
	userColumns = []string{"id", "username", "password_hash", "email", "birthday", "created_at"}

	movieColumns = []string{
		"id", "title", "description",
		"genre_name", "genre_description",
		"director_name", "director_bio",
		"actors", "image_path", "featured",
	}
)

func buildInsertUserQuery(b squirrel.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.UserID, user.Username, user.PasswordHash, user.Email, user.Birthday, user.CreatedAt).
		ToSql()
}

func buildSelectUserQuery(b squirrel.StatementBuilderType, where squirrel.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
}

func buildSelectAllUsersQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("username").
		ToSql()
}

// buildUpdateUserQuery sets only the fields present in update. SetMap
// renders columns in alphabetical order.
func buildUpdateUserQuery(b squirrel.StatementBuilderType, update models.UserUpdate) (string, []any, error) {
	set := make(map[string]any, 4)
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.PasswordHash != nil {
		set["password_hash"] = *update.PasswordHash
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Birthday != nil {
		set["birthday"] = *update.Birthday
	}

	return b.Update(models.User{}.TableName()).
		SetMap(set).
		Where(squirrel.Eq{"id": update.UserID}).
		ToSql()
}

func buildDeleteUserQuery(b squirrel.StatementBuilderType, userID string) (string, []any, error) {
	return b.Delete(models.User{}.TableName()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
}

func buildSelectFavoritesQuery(b squirrel.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select("movie_id").
		From(favoritesTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("position").
		ToSql()
}

func buildSelectAllFavoritesQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select("user_id", "movie_id").
		From(favoritesTable).
		OrderBy("user_id", "position").
		ToSql()
}

func buildCountFavoriteQuery(b squirrel.StatementBuilderType, userID, movieID string) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(favoritesTable).
		Where(squirrel.Eq{"user_id": userID, "movie_id": movieID}).
		ToSql()
}

func buildMaxFavoritePositionQuery(b squirrel.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select("COALESCE(MAX(position), 0)").
		From(favoritesTable).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
}

func buildInsertFavoriteQuery(b squirrel.StatementBuilderType, userID, movieID string, position int64) (string, []any, error) {
	return b.Insert(favoritesTable).
		Columns("user_id", "movie_id", "position").
		Values(userID, movieID, position).
		ToSql()
}

func buildDeleteFavoriteQuery(b squirrel.StatementBuilderType, userID, movieID string) (string, []any, error) {
	return b.Delete(favoritesTable).
		Where(squirrel.Eq{"user_id": userID, "movie_id": movieID}).
		ToSql()
}

func buildDeleteAllFavoritesQuery(b squirrel.StatementBuilderType, userID string) (string, []any, error) {
	return b.Delete(favoritesTable).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
}

func buildSelectMovieQuery(b squirrel.StatementBuilderType, where squirrel.Eq) (string, []any, error) {
	return b.Select(movieColumns...).
		From(models.Movie{}.TableName()).
		Where(where).
		ToSql()
}

func buildSelectAllMoviesQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select(movieColumns...).
		From(models.Movie{}.TableName()).
		OrderBy("title").
		ToSql()
}
