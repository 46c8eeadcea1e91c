package models

import "time"

// Subject is a taught discipline, e.g. Mathematics.
type Subject struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	ImageURL *string `db:"image_url" json:"image_url,omitempty"`
}

// Class is a teaching group identified by a short code such as "10A".
type Class struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	GradeNumber int    `db:"grade_number" json:"grade_number"`
	Level       string `db:"level" json:"level"`
}

// Enrollment links a student to a subject within a class.
type Enrollment struct {
	ID         string    `db:"id" json:"id"`
	StudentID  string    `db:"student_id" json:"student_id"`
	SubjectID  string    `db:"subject_id" json:"subject_id"`
	ClassID    string    `db:"class_id" json:"class_id"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
	Progress   int       `db:"progress" json:"progress"`
}
