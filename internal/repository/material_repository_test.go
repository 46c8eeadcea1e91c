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

func TestMaterialRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectExec("INSERT INTO materials").
		WillReturnResult(sqlmock.NewResult(1, 1))

	material := &models.Material{TeacherID: "t1", SubjectID: "math", ClassID: "10A", Title: "Aljabar"}
	require.NoError(t, repo.Create(context.Background(), material))
	assert.NotEmpty(t, material.ID)
	assert.False(t, material.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_id", "subject_id", "class_id", "title", "description", "body", "notes", "media_url", "created_at"}).
		AddRow("m1", "t1", "math", "10A", "Aljabar", nil, nil, nil, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, teacher_id, subject_id, class_id, title, description, body, notes, media_url, created_at FROM materials WHERE id = $1 LIMIT 1")).
		WithArgs("m1").
		WillReturnRows(rows)

	material, err := repo.FindByID(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "t1", material.TeacherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectQuery("SELECT id, teacher_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMaterialRepositoryListByClassOrdersNewestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "teacher_id", "subject_id", "class_id", "title", "description", "body", "notes", "media_url", "created_at"}).
		AddRow("m2", "t1", "math", "10A", "Bab 2", nil, nil, nil, nil, now).
		AddRow("m1", "t1", "math", "10A", "Bab 1", nil, nil, nil, nil, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT .+ FROM materials WHERE class_id = \\$1 ORDER BY created_at DESC").
		WithArgs("10A").
		WillReturnRows(rows)

	materials, err := repo.ListByClass(context.Background(), "10A")
	require.NoError(t, err)
	require.Len(t, materials, 2)
	assert.Equal(t, "m2", materials[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryUpdateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectExec("UPDATE materials").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), &models.Material{ID: "m1", SubjectID: "math", ClassID: "10A", Title: "Updated"}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM materials WHERE id = $1")).
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
