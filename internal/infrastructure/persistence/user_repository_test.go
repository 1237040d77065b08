package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/a7delivery/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestGormUserRepository_Create(t *testing.T) {
	t.Run("maps duplicate username", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		u := &identity.User{
			ID:           uuid.New(),
			Username:     "karim",
			PasswordHash: "$2a$12$hash",
			Role:         identity.RoleUser,
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "idx_users_username"`))

		err := repo.Create(context.Background(), u)

		assert.ErrorIs(t, err, identity.ErrUsernameTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByUsername(t *testing.T) {
	t.Run("lookup is case-insensitive", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "is_active"}).
			AddRow(userID, "karim", "$2a$12$hash", "user", true)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(username\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("karim", 1).
			WillReturnRows(rows)

		u, err := repo.FindByUsername(context.Background(), "KaRiM")

		require.NoError(t, err)
		assert.Equal(t, userID, u.ID)
		assert.Equal(t, identity.RoleUser, u.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to domain error", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(username\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		u, err := repo.FindByUsername(context.Background(), "ghost")

		assert.Nil(t, u)
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_CountByRole(t *testing.T) {
	repo, mock, mockDB := newMockUserRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE role = \$1`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountByRole(context.Background(), identity.RoleAdmin)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
