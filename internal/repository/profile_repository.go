package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/educore-id/educore-api/internal/models"
)

// ProfileRepository provides database access for student and teacher
// profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const studentColumns = `id, account_id, full_name, address_province, address_city, address, school_province, school_city, school_name, grade_level, guardian_name, guardian_phone, created_at, updated_at`

const teacherColumns = `id, account_id, full_name, address_province, address_city, address, created_at, updated_at`

// FindStudentByAccount returns the student profile linked to an account.
func (r *ProfileRepository) FindStudentByAccount(ctx context.Context, accountID string) (*models.StudentProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_profiles WHERE account_id = $1 LIMIT 1`, studentColumns)
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, accountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student profile: %w", err)
	}
	return &profile, nil
}

// FindTeacherByAccount returns the teacher profile linked to an account.
func (r *ProfileRepository) FindTeacherByAccount(ctx context.Context, accountID string) (*models.TeacherProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM teacher_profiles WHERE account_id = $1 LIMIT 1`, teacherColumns)
	var profile models.TeacherProfile
	if err := r.db.GetContext(ctx, &profile, query, accountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher profile: %w", err)
	}
	return &profile, nil
}

// StudentExists reports whether a student profile row exists.
func (r *ProfileRepository) StudentExists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM student_profiles WHERE id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check student exists: %w", err)
	}
	return exists, nil
}

// UpdateStudent updates a student profile and, when avatarURL is set, the
// owning account's avatar, in one transaction. Returns sql.ErrNoRows when
// no profile row exists for the account.
func (r *ProfileRepository) UpdateStudent(ctx context.Context, profile *models.StudentProfile, avatarURL *string) (*models.StudentProfile, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin profile tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	profile.UpdatedAt = time.Now().UTC()
	query := fmt.Sprintf(`UPDATE student_profiles
		SET full_name = :full_name,
		    address_province = :address_province,
		    address_city = :address_city,
		    address = :address,
		    school_province = :school_province,
		    school_city = :school_city,
		    school_name = :school_name,
		    grade_level = :grade_level,
		    guardian_name = :guardian_name,
		    guardian_phone = :guardian_phone,
		    updated_at = :updated_at
		WHERE account_id = :account_id
		RETURNING %s`, studentColumns)

	rows, err := tx.NamedQuery(query, profile)
	if err != nil {
		return nil, fmt.Errorf("update student profile: %w", err)
	}
	var updated models.StudentProfile
	if !rows.Next() {
		rows.Close()
		return nil, sql.ErrNoRows
	}
	if err := rows.StructScan(&updated); err != nil {
		rows.Close()
		return nil, fmt.Errorf("scan student profile: %w", err)
	}
	rows.Close()

	if avatarURL != nil {
		if err := updateAvatar(ctx, tx, profile.AccountID, *avatarURL); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit profile tx: %w", err)
	}
	return &updated, nil
}

// UpdateTeacher updates a teacher profile and, when avatarURL is set, the
// owning account's avatar, in one transaction.
func (r *ProfileRepository) UpdateTeacher(ctx context.Context, profile *models.TeacherProfile, avatarURL *string) (*models.TeacherProfile, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin profile tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	profile.UpdatedAt = time.Now().UTC()
	query := fmt.Sprintf(`UPDATE teacher_profiles
		SET full_name = :full_name,
		    address_province = :address_province,
		    address_city = :address_city,
		    address = :address,
		    updated_at = :updated_at
		WHERE account_id = :account_id
		RETURNING %s`, teacherColumns)

	rows, err := tx.NamedQuery(query, profile)
	if err != nil {
		return nil, fmt.Errorf("update teacher profile: %w", err)
	}
	var updated models.TeacherProfile
	if !rows.Next() {
		rows.Close()
		return nil, sql.ErrNoRows
	}
	if err := rows.StructScan(&updated); err != nil {
		rows.Close()
		return nil, fmt.Errorf("scan teacher profile: %w", err)
	}
	rows.Close()

	if avatarURL != nil {
		if err := updateAvatar(ctx, tx, profile.AccountID, *avatarURL); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit profile tx: %w", err)
	}
	return &updated, nil
}

func updateAvatar(ctx context.Context, tx *sqlx.Tx, accountID, avatarURL string) error {
	const query = `UPDATE accounts SET avatar_url = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, accountID, avatarURL, time.Now().UTC()); err != nil {
		return fmt.Errorf("update account avatar: %w", err)
	}
	return nil
}
