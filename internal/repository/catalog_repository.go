package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/educore-id/educore-api/internal/models"
)

// CatalogRepository provides read access to subjects and classes.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListSubjects returns all subjects ordered by name.
func (r *CatalogRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	const query = `SELECT id, name, image_url FROM subjects ORDER BY name ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// ListClasses returns all classes ordered by grade then id.
func (r *CatalogRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, name, grade_number, level FROM classes ORDER BY grade_number ASC, id ASC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindSubject resolves a subject by id or, failing that, case-insensitive
// name. There is no fuzzy fallback: an unresolved reference is
// sql.ErrNoRows for the caller to map.
func (r *CatalogRepository) FindSubject(ctx context.Context, ref string) (*models.Subject, error) {
	const query = `SELECT id, name, image_url FROM subjects WHERE id = $1 OR LOWER(name) = LOWER($1) LIMIT 1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, ref); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return &subject, nil
}

// FindClass resolves a class by id or case-insensitive name, fail-closed
// like FindSubject.
func (r *CatalogRepository) FindClass(ctx context.Context, ref string) (*models.Class, error) {
	const query = `SELECT id, name, grade_number, level FROM classes WHERE id = $1 OR LOWER(name) = LOWER($1) LIMIT 1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, ref); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// ListStudentEnrollments returns the classes a student follows for a
// subject, newest enrollment first.
func (r *CatalogRepository) ListStudentEnrollments(ctx context.Context, studentID, subjectRef string) ([]models.Enrollment, error) {
	const query = `SELECT e.id, e.student_id, e.subject_id, e.class_id, e.enrolled_at, e.progress
		FROM class_enrollments e
		JOIN subjects s ON e.subject_id = s.id
		WHERE e.student_id = $1 AND (s.id = $2 OR LOWER(s.name) = LOWER($2))
		ORDER BY e.enrolled_at DESC`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID, subjectRef); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}
