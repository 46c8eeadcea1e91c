package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/educore-id/educore-api/internal/models"
	"github.com/educore-id/educore-api/internal/repository"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/export"
)

type rosterRepository interface {
	ListStudents(ctx context.Context) ([]repository.RosterRow, error)
	ListActiveStudents(ctx context.Context) ([]repository.ActiveRosterRow, error)
	ListCompletionsByTeacher(ctx context.Context, teacherID string) ([]models.CompletionEntry, error)
}

// ExportFormat selects the rendering of a roster export.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// RosterService backs the teacher-facing student views and exports.
type RosterService struct {
	rosters rosterRepository
	logger  *zap.Logger
}

// NewRosterService creates a new roster service.
func NewRosterService(rosters rosterRepository, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{rosters: rosters, logger: logger}
}

// ListStudents returns every registered student.
func (s *RosterService) ListStudents(ctx context.Context) ([]repository.RosterRow, error) {
	rows, err := s.rosters.ListStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return rows, nil
}

// ListActiveStudents returns students holding an unexpired session.
func (s *RosterService) ListActiveStudents(ctx context.Context) ([]repository.ActiveRosterRow, error) {
	rows, err := s.rosters.ListActiveStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list active students")
	}
	return rows, nil
}

// ListCompletions returns completion marks placed on the calling
// teacher's materials.
func (s *RosterService) ListCompletions(ctx context.Context, teacherProfileID string) ([]models.CompletionEntry, error) {
	if teacherProfileID == "" {
		return nil, appErrors.ErrProfileMissing
	}
	entries, err := s.rosters.ListCompletionsByTeacher(ctx, teacherProfileID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list completions")
	}
	return entries, nil
}

// ExportStudents renders the full student roster as CSV or PDF.
func (s *RosterService) ExportStudents(ctx context.Context, format ExportFormat) ([]byte, string, error) {
	rows, err := s.ListStudents(ctx)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Title:   "Student Roster",
		Headers: []string{"Name", "Email", "Grade", "School", "City", "Registered"},
	}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, []string{
			row.FullName,
			row.Email,
			row.GradeLevel,
			stringOrDash(row.SchoolName),
			stringOrDash(row.SchoolCity),
			row.RegisteredAt.Format("2006-01-02"),
		})
	}

	switch format {
	case ExportCSV:
		out, err := export.RenderCSV(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return out, "text/csv", nil
	case ExportPDF:
		out, err := export.RenderPDF(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return out, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func stringOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
