package models

import "time"

// StudentProfile extends an account with student-specific fields.
type StudentProfile struct {
	ID             string    `db:"id" json:"id"`
	AccountID      string    `db:"account_id" json:"account_id"`
	FullName       string    `db:"full_name" json:"full_name"`
	AddressProv    *string   `db:"address_province" json:"address_province,omitempty"`
	AddressCity    *string   `db:"address_city" json:"address_city,omitempty"`
	Address        *string   `db:"address" json:"address,omitempty"`
	SchoolProv     *string   `db:"school_province" json:"school_province,omitempty"`
	SchoolCity     *string   `db:"school_city" json:"school_city,omitempty"`
	SchoolName     *string   `db:"school_name" json:"school_name,omitempty"`
	GradeLevel     string    `db:"grade_level" json:"grade_level"`
	GuardianName   string    `db:"guardian_name" json:"guardian_name"`
	GuardianPhone  string    `db:"guardian_phone" json:"guardian_phone"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherProfile extends an account with teacher-specific fields.
type TeacherProfile struct {
	ID          string    `db:"id" json:"id"`
	AccountID   string    `db:"account_id" json:"account_id"`
	FullName    string    `db:"full_name" json:"full_name"`
	AddressProv *string   `db:"address_province" json:"address_province,omitempty"`
	AddressCity *string   `db:"address_city" json:"address_city,omitempty"`
	Address     *string   `db:"address" json:"address,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
