package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atikur-24/daily-fit-server/internal/cache"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

const (
	selectUserSQL = `SELECT "id","email"(,"role")? FROM "users" WHERE id = \$1`
	updateRoleSQL = `UPDATE "users" SET "role"=\$1`
	deleteUserSQL = `DELETE FROM "users" WHERE id = \$1`
	countUserSQL  = `SELECT count\(\*\) FROM "users" WHERE email = \$1`
	insertUserSQL = `INSERT INTO "users"`
)

func userRow(id, email string, role models.UserRole) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "role"}).AddRow(id, email, string(role))
}

func TestUserPostgreSQL_UpdateRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		update  bool
		expect  *models.WriteResult
		evicted bool
	}{
		{
			name:    "Student is promoted",
			rows:    userRow("u1", "sara@fit.io", models.RoleStudent),
			update:  true,
			expect:  models.UpdateResult(1, 1),
			evicted: true,
		},
		{
			name:   "Same role matches without modifying",
			rows:   userRow("u1", "sara@fit.io", models.RoleAdmin),
			expect: models.UpdateResult(1, 0),
		},
		{
			name:   "Unknown user is neither updated nor created",
			rows:   sqlmock.NewRows([]string{"id", "email", "role"}),
			expect: models.UpdateResult(0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			cm, mr := newTestCache(t)
			require.NoError(t, cm.User.Set(ctx, cache.UserEmailKey("sara@fit.io"), models.User{ID: "u1"}, time.Minute))
			repo := NewUserPostgreSQL(db, cm)

			mock.ExpectQuery(selectUserSQL).WillReturnRows(tt.rows)
			if tt.update {
				mock.ExpectBegin()
				mock.ExpectExec(updateRoleSQL).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			}

			result, err := repo.UpdateRole(ctx, "u1", models.RoleAdmin)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, result)
			assert.Equal(t, !tt.evicted, mr.Exists("user:role:sara@fit.io"))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserPostgreSQL_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing user is removed and evicted", func(t *testing.T) {
		db, mock := newMockDB(t)
		cm, mr := newTestCache(t)
		require.NoError(t, cm.User.Set(ctx, cache.UserEmailKey("sara@fit.io"), models.User{ID: "u1"}, time.Minute))
		repo := NewUserPostgreSQL(db, cm)

		mock.ExpectQuery(selectUserSQL).WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("u1", "sara@fit.io"))
		mock.ExpectBegin()
		mock.ExpectExec(deleteUserSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		result, err := repo.Delete(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, models.DeleteResult(1), result)
		assert.False(t, mr.Exists("user:role:sara@fit.io"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown user deletes nothing", func(t *testing.T) {
		db, mock := newMockDB(t)
		cm, _ := newTestCache(t)
		repo := NewUserPostgreSQL(db, cm)

		mock.ExpectQuery(selectUserSQL).WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

		result, err := repo.Delete(ctx, "missing")
		require.NoError(t, err)
		assert.Equal(t, models.DeleteResult(0), result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLRepository_WithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Check and insert share one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		cm, _ := newTestCache(t)
		repo := newPostgreSQLRepository(db, nil, cm)

		mock.ExpectBegin()
		mock.ExpectQuery(countUserSQL).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(insertUserSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.WithTransaction(ctx, func(tx repositories.Repository) error {
			exists, err := tx.User().ExistsByEmail(ctx, "sara@fit.io")
			if err != nil || exists {
				return err
			}
			_, err = tx.User().Create(ctx, &models.User{Name: "Sara", Email: "sara@fit.io"})
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		cm, _ := newTestCache(t)
		repo := newPostgreSQLRepository(db, nil, cm)

		mock.ExpectBegin()
		mock.ExpectQuery(countUserSQL).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.WithTransaction(ctx, func(tx repositories.Repository) error {
			_, err := tx.User().ExistsByEmail(ctx, "sara@fit.io")
			return err
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
