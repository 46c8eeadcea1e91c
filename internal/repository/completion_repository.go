package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/educore-id/educore-api/internal/models"
)

// CompletionRepository provides database access for completion marks.
type CompletionRepository struct {
	db *sqlx.DB
}

// NewCompletionRepository creates a new instance of CompletionRepository.
func NewCompletionRepository(db *sqlx.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// MarkComplete verifies that the material and student exist, then upserts
// the completion mark, all in one transaction. Marking twice is
// idempotent. Returns sql.ErrNoRows when either side is absent.
func (r *CompletionRepository) MarkComplete(ctx context.Context, studentID, materialID string) (*models.CompletionMark, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin completion tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM materials WHERE id = $1)`, materialID); err != nil {
		return nil, fmt.Errorf("check material exists: %w", err)
	}
	if !exists {
		return nil, sql.ErrNoRows
	}
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM student_profiles WHERE id = $1)`, studentID); err != nil {
		return nil, fmt.Errorf("check student exists: %w", err)
	}
	if !exists {
		return nil, sql.ErrNoRows
	}

	const upsert = `INSERT INTO completion_marks (id, student_id, material_id, done)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (student_id, material_id)
		DO UPDATE SET done = TRUE
		RETURNING id, student_id, material_id, done`
	var mark models.CompletionMark
	if err := tx.GetContext(ctx, &mark, upsert, uuid.NewString(), studentID, materialID); err != nil {
		return nil, fmt.Errorf("upsert completion mark: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit completion tx: %w", err)
	}
	return &mark, nil
}

// FindMark returns the completion mark for a (student, material) pair, or
// sql.ErrNoRows when none exists.
func (r *CompletionRepository) FindMark(ctx context.Context, studentID, materialID string) (*models.CompletionMark, error) {
	const query = `SELECT id, student_id, material_id, done FROM completion_marks WHERE student_id = $1 AND material_id = $2 LIMIT 1`
	var mark models.CompletionMark
	if err := r.db.GetContext(ctx, &mark, query, studentID, materialID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find completion mark: %w", err)
	}
	return &mark, nil
}
