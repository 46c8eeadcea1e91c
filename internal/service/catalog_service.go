package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/educore-id/educore-api/internal/models"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
)

type catalogRepository interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListStudentEnrollments(ctx context.Context, studentID, subjectRef string) ([]models.Enrollment, error)
}

// CatalogService exposes the subject and class catalog.
type CatalogService struct {
	repo   catalogRepository
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo catalogRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, logger: logger}
}

// ListSubjects returns all subjects.
func (s *CatalogService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.ListSubjects(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// ListClasses returns all classes.
func (s *CatalogService) ListClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// ListStudentEnrollments returns the classes a student follows for a
// subject.
func (s *CatalogService) ListStudentEnrollments(ctx context.Context, studentID, subjectRef string) ([]models.Enrollment, error) {
	if studentID == "" {
		return nil, appErrors.ErrProfileMissing
	}
	if subjectRef == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject is required")
	}
	enrollments, err := s.repo.ListStudentEnrollments(ctx, studentID, subjectRef)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, nil
}
