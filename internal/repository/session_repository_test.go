package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educore-id/educore-api/internal/models"
)

func TestSessionRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	expires := time.Now().UTC().Add(time.Hour)
	mock.ExpectExec("INSERT INTO sessions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), &models.Session{Token: "tok", AccountID: "a1", ExpiresAt: expires}))

	rows := sqlmock.NewRows([]string{"token", "account_id", "expires_at"}).
		AddRow("tok", "a1", expires)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT token, account_id, expires_at FROM sessions WHERE token = $1 LIMIT 1")).
		WithArgs("tok").
		WillReturnRows(rows)

	session, err := repo.FindByToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "a1", session.AccountID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryFindByTokenNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery("SELECT token, account_id, expires_at FROM sessions").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSessionRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE token = $1")).
		WithArgs("tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "tok"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
