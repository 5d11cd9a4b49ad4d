package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/reino/financas-api/internal/domain"
	"github.com/reino/financas-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountStoreMock(t *testing.T) (*PostgresAccountStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresAccountStore(db, nil), mock
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"})
}

func TestPostgresAccountStore_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		s, mock := newAccountStoreMock(t)
		now := time.Now().UTC()
		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WithArgs("ana@example.com").
			WillReturnRows(accountRows().AddRow(int64(7), "Ana", "ana@example.com", "$2a$hash", now, now))

		account, err := s.FindByEmail(ctx, "ana@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(7), account.ID)
		assert.Equal(t, "Ana", account.Name)
		assert.Equal(t, "$2a$hash", account.HashedPassword)
		assert.Empty(t, account.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newAccountStoreMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WithArgs("nobody@example.com").
			WillReturnRows(accountRows())

		account, err := s.FindByEmail(ctx, "nobody@example.com")

		assert.Nil(t, account)
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		s, mock := newAccountStoreMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WillReturnError(errors.New("connection refused"))

		_, err := s.FindByEmail(ctx, "ana@example.com")

		require.Error(t, err)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestPostgresAccountStore_FindByID(t *testing.T) {
	s, mock := newAccountStoreMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(accountRows())

	_, err := s.FindByID(context.Background(), 99)

	assert.ErrorIs(t, err, store.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAccountStore_ExistsByEmail(t *testing.T) {
	s, mock := newAccountStoreMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("bia@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := s.ExistsByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByEmail(context.Background(), "bia@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAccountStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("insert assigns id", func(t *testing.T) {
		s, mock := newAccountStoreMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
			WithArgs("Ana", "ana@example.com", "$2a$hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		account := &domain.Account{Name: "Ana", Email: "ana@example.com", HashedPassword: "$2a$hash"}
		err := s.Save(ctx, account)

		require.NoError(t, err)
		assert.Equal(t, int64(42), account.ID)
		assert.False(t, account.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert duplicate email", func(t *testing.T) {
		s, mock := newAccountStoreMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "accounts_email_key"})

		account := &domain.Account{Name: "Ana", Email: "ana@example.com", HashedPassword: "$2a$hash"}
		err := s.Save(ctx, account)

		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.Zero(t, account.ID)
	})

	t.Run("update existing", func(t *testing.T) {
		s, mock := newAccountStoreMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts")).
			WithArgs("Ana Maria", "ana@example.com", "$2a$hash", sqlmock.AnyArg(), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		account := &domain.Account{ID: 5, Name: "Ana Maria", Email: "ana@example.com", HashedPassword: "$2a$hash"}
		require.NoError(t, s.Save(ctx, account))
		assert.Equal(t, int64(5), account.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update missing", func(t *testing.T) {
		s, mock := newAccountStoreMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Save(ctx, &domain.Account{ID: 5, Name: "Ana", Email: "ana@example.com"})
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})
}

func TestPostgresAccountStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes entries then account", func(t *testing.T) {
		s, mock := newAccountStoreMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entries WHERE account_id = $1")).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts WHERE id = $1")).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, s.Delete(ctx, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing account rolls back", func(t *testing.T) {
		s, mock := newAccountStoreMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entries")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := s.Delete(ctx, 3)
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
