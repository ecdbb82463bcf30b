package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestApplicationIDRepositoryReserve(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewApplicationIDRepository(db)
	fixed := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	insert := regexp.QuoteMeta("INSERT INTO application_ids (application_id, reserved_at) VALUES ($1, $2) ON CONFLICT (application_id) DO NOTHING")
	mock.ExpectExec(insert).WithArgs("123456", fixed).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WithArgs("123456", fixed).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Reserve(context.Background(), "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Reserve(context.Background(), "123456")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationIDRepositoryReserveError(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewApplicationIDRepository(db)

	mock.ExpectExec("INSERT INTO application_ids").WillReturnError(errors.New("connection reset"))
	_, err := repo.Reserve(context.Background(), "654321")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationIDRepositoryExistsAndSchema(t *testing.T) {
	db, mock, cleanup := newLedgerMock(t)
	defer cleanup()
	repo := NewApplicationIDRepository(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS application_ids").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM application_ids WHERE application_id = $1)")).
		WithArgs("111111").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	exists, err := repo.Exists(context.Background(), "111111")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
