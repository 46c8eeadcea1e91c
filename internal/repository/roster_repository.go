package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/educore-id/educore-api/internal/models"
)

// RosterRow is a student summary for teacher-facing listings.
type RosterRow struct {
	ID           string    `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	GradeLevel   string    `db:"grade_level" json:"grade_level"`
	SchoolName   *string   `db:"school_name" json:"school_name,omitempty"`
	SchoolCity   *string   `db:"school_city" json:"school_city,omitempty"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}

// ActiveRosterRow extends RosterRow with session expiry for the
// active-students view.
type ActiveRosterRow struct {
	ID             string    `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Email          string    `db:"email" json:"email"`
	GradeLevel     string    `db:"grade_level" json:"grade_level"`
	SessionExpires time.Time `db:"session_expires" json:"session_expires"`
}

// RosterRepository provides the teacher-facing student views.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository creates a new instance of RosterRepository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// ListStudents returns every registered student, newest first.
func (r *RosterRepository) ListStudents(ctx context.Context) ([]RosterRow, error) {
	const query = `SELECT sp.id, sp.full_name, a.email, sp.grade_level, sp.school_name, sp.school_city, a.created_at AS registered_at
		FROM student_profiles sp
		JOIN accounts a ON sp.account_id = a.id
		ORDER BY a.created_at DESC`
	var rows []RosterRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return rows, nil
}

// ListActiveStudents returns students holding an unexpired session.
// Students may hold several concurrent sessions; each appears once, with
// the expiry of the longest-lived session.
func (r *RosterRepository) ListActiveStudents(ctx context.Context) ([]ActiveRosterRow, error) {
	const query = `SELECT t.* FROM (
			SELECT DISTINCT ON (sp.id) sp.id, sp.full_name, a.email, sp.grade_level, se.expires_at AS session_expires
			FROM student_profiles sp
			JOIN accounts a ON sp.account_id = a.id
			JOIN sessions se ON a.id = se.account_id
			WHERE se.expires_at > NOW()
			ORDER BY sp.id, se.expires_at DESC
		) t ORDER BY t.session_expires DESC`
	var rows []ActiveRosterRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list active students: %w", err)
	}
	return rows, nil
}

// ListCompletionsByTeacher returns students who completed materials owned
// by the given teacher.
func (r *RosterRepository) ListCompletionsByTeacher(ctx context.Context, teacherID string) ([]models.CompletionEntry, error) {
	const query = `SELECT cm.id AS mark_id, sp.id AS student_id, sp.full_name AS student_name, s.name AS subject_name, m.class_id
		FROM completion_marks cm
		JOIN student_profiles sp ON cm.student_id = sp.id
		JOIN materials m ON cm.material_id = m.id
		JOIN subjects s ON m.subject_id = s.id
		WHERE cm.done = TRUE AND m.teacher_id = $1
		ORDER BY cm.id DESC`
	var entries []models.CompletionEntry
	if err := r.db.SelectContext(ctx, &entries, query, teacherID); err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return entries, nil
}
