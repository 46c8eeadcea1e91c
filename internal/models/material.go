package models

import "time"

// Material is a learning-content record owned by exactly one teacher and
// scoped to a subject and class. TeacherID is immutable after creation;
// ownership decides who may update or delete the record.
type Material struct {
	ID          string    `db:"id" json:"id"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Body        *string   `db:"body" json:"body,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	MediaURL    *string   `db:"media_url" json:"media_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CompletionMark records that a student finished a material. Unique per
// (student, material); marking twice is idempotent.
type CompletionMark struct {
	ID         string `db:"id" json:"id"`
	StudentID  string `db:"student_id" json:"student_id"`
	MaterialID string `db:"material_id" json:"material_id"`
	Done       bool   `db:"done" json:"done"`
}

// CompletionEntry is a roster row for teachers: which student completed
// which of their materials.
type CompletionEntry struct {
	MarkID      string `db:"mark_id" json:"mark_id"`
	StudentID   string `db:"student_id" json:"student_id"`
	StudentName string `db:"student_name" json:"student_name"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	ClassID     string `db:"class_id" json:"class_id"`
}
