package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educore-id/educore-api/internal/models"
	"github.com/educore-id/educore-api/internal/repository"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
)

type mockRosterRepo struct {
	students    []repository.RosterRow
	active      []repository.ActiveRosterRow
	completions []models.CompletionEntry
	err         error
}

func (m *mockRosterRepo) ListStudents(ctx context.Context) ([]repository.RosterRow, error) {
	return m.students, m.err
}

func (m *mockRosterRepo) ListActiveStudents(ctx context.Context) ([]repository.ActiveRosterRow, error) {
	return m.active, m.err
}

func (m *mockRosterRepo) ListCompletionsByTeacher(ctx context.Context, teacherID string) ([]models.CompletionEntry, error) {
	return m.completions, m.err
}

func TestRosterServiceListCompletionsRequiresProfile(t *testing.T) {
	svc := NewRosterService(&mockRosterRepo{}, nil)

	_, err := svc.ListCompletions(context.Background(), "")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrProfileMissing.Code, appErr.Code)
}

func TestRosterServiceExportStudentsCSV(t *testing.T) {
	school := "SMA 1"
	repo := &mockRosterRepo{students: []repository.RosterRow{
		{ID: "sp-1", FullName: "Student A", Email: "a@example.com", GradeLevel: "10", SchoolName: &school, RegisteredAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewRosterService(repo, nil)

	out, contentType, err := svc.ExportStudents(context.Background(), ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(out)
	assert.True(t, strings.Contains(body, "Name,Email,Grade,School,City,Registered"))
	assert.True(t, strings.Contains(body, "Student A,a@example.com,10,SMA 1,-,2026-01-15"))
}

func TestRosterServiceExportStudentsPDF(t *testing.T) {
	svc := NewRosterService(&mockRosterRepo{}, nil)

	out, contentType, err := svc.ExportStudents(context.Background(), ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestRosterServiceExportStudentsUnknownFormat(t *testing.T) {
	svc := NewRosterService(&mockRosterRepo{}, nil)

	_, _, err := svc.ExportStudents(context.Background(), ExportFormat("xlsx"))
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
