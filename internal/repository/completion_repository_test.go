package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionRepositoryMarkComplete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCompletionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM materials WHERE id = $1)")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM student_profiles WHERE id = $1)")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO completion_marks").
		WithArgs(sqlmock.AnyArg(), "s1", "m1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "material_id", "done"}).AddRow("c1", "s1", "m1", true))
	mock.ExpectCommit()

	mark, err := repo.MarkComplete(context.Background(), "s1", "m1")
	require.NoError(t, err)
	assert.True(t, mark.Done)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionRepositoryMarkCompleteUnknownMaterial(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCompletionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM materials WHERE id = $1)")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := repo.MarkComplete(context.Background(), "s1", "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionRepositoryFindMarkAbsent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCompletionRepository(db)

	mock.ExpectQuery("SELECT id, student_id, material_id, done FROM completion_marks").
		WithArgs("s1", "m1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindMark(context.Background(), "s1", "m1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
