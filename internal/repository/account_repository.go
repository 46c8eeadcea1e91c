package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/educore-id/educore-api/internal/models"
)

// ErrEmailTaken signals a registration attempt with an email that already
// has an account.
var ErrEmailTaken = errors.New("email already registered")

// AccountRepository provides database access for accounts and the
// transactional registration flow.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByEmail returns an account by email address.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	const query = `SELECT id, email, password_hash, role, avatar_url, created_at, updated_at FROM accounts WHERE email = $1 LIMIT 1`
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &account, nil
}

// FindByID returns an account by identifier.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	const query = `SELECT id, email, password_hash, role, avatar_url, created_at, updated_at FROM accounts WHERE id = $1 LIMIT 1`
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &account, nil
}

// CreateStudent inserts an account and its student profile in a single
// transaction. Returns ErrEmailTaken when the email is already registered.
func (r *AccountRepository) CreateStudent(ctx context.Context, account *models.Account, profile *models.StudentProfile) error {
	return r.createWithProfile(ctx, account, func(tx *sqlx.Tx) error {
		if profile.ID == "" {
			profile.ID = uuid.NewString()
		}
		profile.AccountID = account.ID
		profile.CreatedAt = account.CreatedAt
		profile.UpdatedAt = account.UpdatedAt
		const query = `INSERT INTO student_profiles (id, account_id, full_name, address_province, address_city, address, school_province, school_city, school_name, grade_level, guardian_name, guardian_phone, created_at, updated_at)
			VALUES (:id, :account_id, :full_name, :address_province, :address_city, :address, :school_province, :school_city, :school_name, :grade_level, :guardian_name, :guardian_phone, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, query, profile); err != nil {
			return fmt.Errorf("create student profile: %w", err)
		}
		return nil
	})
}

// CreateTeacher inserts an account and its teacher profile in a single
// transaction. Returns ErrEmailTaken when the email is already registered.
func (r *AccountRepository) CreateTeacher(ctx context.Context, account *models.Account, profile *models.TeacherProfile) error {
	return r.createWithProfile(ctx, account, func(tx *sqlx.Tx) error {
		if profile.ID == "" {
			profile.ID = uuid.NewString()
		}
		profile.AccountID = account.ID
		profile.CreatedAt = account.CreatedAt
		profile.UpdatedAt = account.UpdatedAt
		const query = `INSERT INTO teacher_profiles (id, account_id, full_name, address_province, address_city, address, created_at, updated_at)
			VALUES (:id, :account_id, :full_name, :address_province, :address_city, :address, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, query, profile); err != nil {
			return fmt.Errorf("create teacher profile: %w", err)
		}
		return nil
	})
}

func (r *AccountRepository) createWithProfile(ctx context.Context, account *models.Account, insertProfile func(tx *sqlx.Tx) error) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var existing string
	err = tx.GetContext(ctx, &existing, `SELECT id FROM accounts WHERE email = $1 LIMIT 1`, account.Email)
	if err == nil {
		return ErrEmailTaken
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("check email uniqueness: %w", err)
	}

	const insertAccount = `INSERT INTO accounts (id, email, password_hash, role, avatar_url, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :role, :avatar_url, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertAccount, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	if err := insertProfile(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration tx: %w", err)
	}
	return nil
}
