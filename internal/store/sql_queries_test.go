// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	"github.com/MKhiriev/strobe/models"
	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dollar   = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	question = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
)

func Test_buildUpdateUserQuery(t *testing.T) {
	name := "bob"
	hash := "$2a$10$x"
	email := "bob@example.com"
	birthday := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		update    models.UserUpdate
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "single field",
			update:    models.UserUpdate{UserID: "u-1", Email: &email},
			wantQuery: "UPDATE users SET email = $1 WHERE id = $2",
			wantArgs:  []any{email, "u-1"},
		},
		{
			name:      "every field in column order",
			update:    models.UserUpdate{UserID: "u-1", Username: &name, PasswordHash: &hash, Email: &email, Birthday: &birthday},
			wantQuery: "UPDATE users SET birthday = $1, email = $2, password_hash = $3, username = $4 WHERE id = $5",
			wantArgs:  []any{birthday, email, hash, name, "u-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdateUserQuery(dollar, tt.update)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_buildUpdateUserQuery_EmptyUpdateFails(t *testing.T) {
	_, _, err := buildUpdateUserQuery(dollar, models.UserUpdate{UserID: "u-1"})
	assert.Error(t, err)
}

func Test_buildSelectUserQuery_Placeholders(t *testing.T) {
	query, args, err := buildSelectUserQuery(dollar, squirrel.Eq{"username": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, username, password_hash, email, birthday, created_at FROM users WHERE username = $1", query)
	assert.Equal(t, []any{"alice"}, args)

	query, _, err = buildSelectUserQuery(question, squirrel.Eq{"username": "alice"})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE username = ?")
}

func Test_buildInsertFavoriteQuery(t *testing.T) {
	query, args, err := buildInsertFavoriteQuery(question, "u-1", "m-1", 4)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO user_favorite_movies (user_id,movie_id,position) VALUES (?,?,?)", query)
	assert.Equal(t, []any{"u-1", "m-1", int64(4)}, args)
}

func Test_buildSelectAllMoviesQuery(t *testing.T) {
	query, args, err := buildSelectAllMoviesQuery(dollar)
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, query, "FROM movies ORDER BY title")
	for _, col := range movieColumns {
		assert.Contains(t, query, col)
	}
}
