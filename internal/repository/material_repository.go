package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/educore-id/educore-api/internal/models"
)

// MaterialRepository provides database access for learning materials.
type MaterialRepository struct {
	db *sqlx.DB
}

// NewMaterialRepository creates a new instance of MaterialRepository.
func NewMaterialRepository(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

const materialColumns = `id, teacher_id, subject_id, class_id, title, description, body, notes, media_url, created_at`

// Create inserts a material row.
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}
	if material.CreatedAt.IsZero() {
		material.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO materials (id, teacher_id, subject_id, class_id, title, description, body, notes, media_url, created_at)
		VALUES (:id, :teacher_id, :subject_id, :class_id, :title, :description, :body, :notes, :media_url, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, material); err != nil {
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// FindByID returns a material by identifier.
func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*models.Material, error) {
	query := fmt.Sprintf(`SELECT %s FROM materials WHERE id = $1 LIMIT 1`, materialColumns)
	var material models.Material
	if err := r.db.GetContext(ctx, &material, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find material: %w", err)
	}
	return &material, nil
}

// ListByClass returns materials for a class, newest first.
func (r *MaterialRepository) ListByClass(ctx context.Context, classID string) ([]models.Material, error) {
	query := fmt.Sprintf(`SELECT %s FROM materials WHERE class_id = $1 ORDER BY created_at DESC`, materialColumns)
	var materials []models.Material
	if err := r.db.SelectContext(ctx, &materials, query, classID); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}

// Update applies the mutable fields of a material. The owning teacher is
// never updated.
func (r *MaterialRepository) Update(ctx context.Context, material *models.Material) error {
	const query = `UPDATE materials
		SET subject_id = :subject_id,
		    class_id = :class_id,
		    title = :title,
		    description = :description,
		    body = :body,
		    notes = :notes,
		    media_url = :media_url
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, material); err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// Delete removes a material row.
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM materials WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}
