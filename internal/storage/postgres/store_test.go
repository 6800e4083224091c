package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/agrifield/agridir-be/internal/models"
	"github.com/agrifield/agridir-be/internal/storage"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewStoreWithDB(db), mock
}

func TestCreateUser(t *testing.T) {
	store, mock := newStoreWithMock(t)
	created := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "A", "a@x.com", "hash", false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	user, err := store.CreateUser(context.Background(), models.User{
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, created, user.CreatedAt)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "A", "a@x.com", "hash", false).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := store.CreateUser(context.Background(), models.User{
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestFindUserByEmail(t *testing.T) {
	store, mock := newStoreWithMock(t)
	created := time.Now().UTC()

	cols := []string{"id", "name", "email", "password_hash", "is_admin", "created_at"}
	mock.ExpectQuery(`SELECT id, name, email, password_hash, is_admin, created_at\s+FROM users\s+WHERE email`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u1", "A", "a@x.com", "hash", true, created))

	user, err := store.FindUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.True(t, user.IsAdmin)
}

func TestFindUserByEmailNotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	cols := []string{"id", "name", "email", "password_hash", "is_admin", "created_at"}
	mock.ExpectQuery(`SELECT id, name, email, password_hash, is_admin, created_at\s+FROM users\s+WHERE email`).
		WithArgs("missing@x.com").
		WillReturnRows(sqlmock.NewRows(cols))

	_, err := store.FindUserByEmail(context.Background(), "missing@x.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetSoilTypeNotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(`FROM soil_types\s+WHERE id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetSoilType(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteSoilType(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(`DELETE FROM soil_types WHERE id`).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.DeleteSoilType(context.Background(), "s1"))
}

func TestDeleteSoilTypeNotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectExec(`DELETE FROM soil_types WHERE id`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteSoilType(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateDistributorNotFound(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery(`UPDATE distributors`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := store.UpdateDistributor(context.Background(), models.Distributor{ID: "missing"})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAppendActivityStoresNullsForEmptyFields(t *testing.T) {
	store, mock := newStoreWithMock(t)
	created := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO activity_logs`).
		WithArgs(sqlmock.AnyArg(), "login", "u1", "a@x.com", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	entry, err := store.AppendActivity(context.Background(), models.ActivityLog{
		Action: "login",
		UserID: "u1",
		Email:  "a@x.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	require.Equal(t, created, entry.CreatedAt)
}

func TestListActivity(t *testing.T) {
	store, mock := newStoreWithMock(t)
	created := time.Now().UTC()

	cols := []string{"id", "action", "user_id", "email", "details", "created_at"}
	mock.ExpectQuery(`FROM activity_logs\s+ORDER BY created_at DESC`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("l2", "soil created", "u1", "a@x.com", "Loamy", created).
			AddRow("l1", "login", "u1", "a@x.com", nil, created.Add(-time.Minute)))

	logs, err := store.ListActivity(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "soil created", logs[0].Action)
	require.Equal(t, "Loamy", logs[0].Details)
	require.Empty(t, logs[1].Details)
}
