package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/models"
)

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(insertUser)).
		WithArgs(sqlmock.AnyArg(), "citizen@example.com", "Ada", "hashed", string(models.RoleCitizen)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	user, err := repo.CreateUser(context.Background(), models.User{
		Email:        "citizen@example.com",
		Name:         "Ada",
		PasswordHash: "hashed",
		Role:         models.RoleCitizen,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.Password)
	assert.True(t, user.CreatedAt.Equal(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(insertUser)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.CreateUser(context.Background(), models.User{
		Email: "citizen@example.com",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindUserByEmail_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(findUserByEmail)).
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindUserByEmail(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(findUserByEmail)).
		WithArgs("citizen@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "role", "created_at"}).
			AddRow("user-1", "citizen@example.com", "Ada", "hashed", string(models.RoleCitizen), now))

	user, err := repo.FindUserByEmail(context.Background(), "citizen@example.com")
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, models.RoleCitizen, user.Role)
	assert.Equal(t, "hashed", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}
