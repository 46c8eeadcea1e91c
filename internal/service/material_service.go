package service

import (
	"context"
	"database/sql"
	"errors"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/educore-id/educore-api/internal/models"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/storage"
)

type materialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	FindByID(ctx context.Context, id string) (*models.Material, error)
	ListByClass(ctx context.Context, classID string) ([]models.Material, error)
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id string) error
}

type completionRepository interface {
	MarkComplete(ctx context.Context, studentID, materialID string) (*models.CompletionMark, error)
	FindMark(ctx context.Context, studentID, materialID string) (*models.CompletionMark, error)
}

type referenceResolver interface {
	FindSubject(ctx context.Context, ref string) (*models.Subject, error)
	FindClass(ctx context.Context, ref string) (*models.Class, error)
}

// CreateMaterialRequest carries fields for creating a material. Subject
// and class accept an id or a human-readable name.
type CreateMaterialRequest struct {
	Subject     string  `json:"subject" validate:"required"`
	Class       string  `json:"class" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Body        *string `json:"body,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	MediaURL    *string `json:"media_url,omitempty"`
}

// UpdateMaterialRequest applies a partial update; nil fields are left
// untouched.
type UpdateMaterialRequest struct {
	Subject     *string `json:"subject,omitempty"`
	Class       *string `json:"class,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Body        *string `json:"body,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	MediaURL    *string `json:"media_url,omitempty"`
}

// MaterialDownload describes how a material attachment is served: an
// absolute URL to redirect to, or a signed token for the file endpoint.
type MaterialDownload struct {
	RedirectURL string `json:"redirect_url,omitempty"`
	Token       string `json:"token,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

// MaterialService is the single place where authorization, ownership and
// file operations meet for learning materials.
type MaterialService struct {
	materials   materialRepository
	completions completionRepository
	refs        referenceResolver
	blob        storage.Blob
	signer      *storage.DownloadTokenSigner
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewMaterialService creates a new material service.
func NewMaterialService(materials materialRepository, completions completionRepository, refs referenceResolver, blob storage.Blob, signer *storage.DownloadTokenSigner, validate *validator.Validate, logger *zap.Logger) *MaterialService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialService{
		materials:   materials,
		completions: completions,
		refs:        refs,
		blob:        blob,
		signer:      signer,
		validator:   validate,
		logger:      logger,
	}
}

// Create persists a material owned by the calling teacher. Subject and
// class references resolve strictly: an unknown reference fails with a
// validation error instead of silently substituting another class.
func (s *MaterialService) Create(ctx context.Context, teacherProfileID string, req CreateMaterialRequest) (*models.Material, error) {
	if teacherProfileID == "" {
		return nil, appErrors.ErrProfileMissing
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material payload")
	}

	subject, err := s.resolveSubject(ctx, req.Subject)
	if err != nil {
		return nil, err
	}
	class, err := s.resolveClass(ctx, req.Class)
	if err != nil {
		return nil, err
	}

	material := &models.Material{
		TeacherID:   teacherProfileID,
		SubjectID:   subject.ID,
		ClassID:     class.ID,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		Notes:       req.Notes,
		MediaURL:    req.MediaURL,
	}
	if err := s.materials.Create(ctx, material); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create material")
	}
	return material, nil
}

// Get returns a material by identifier.
func (s *MaterialService) Get(ctx context.Context, id string) (*models.Material, error) {
	material, err := s.materials.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}
	return material, nil
}

// ListByClass returns the materials of a class, newest first.
func (s *MaterialService) ListByClass(ctx context.Context, classRef string) ([]models.Material, error) {
	class, err := s.resolveClass(ctx, classRef)
	if err != nil {
		return nil, err
	}
	materials, err := s.materials.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list materials")
	}
	return materials, nil
}

// Update applies a partial update after the ownership check: only the
// teacher that created a material may change it.
func (s *MaterialService) Update(ctx context.Context, materialID, callerProfileID string, req UpdateMaterialRequest) (*models.Material, error) {
	material, err := s.loadOwned(ctx, materialID, callerProfileID)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		subject, err := s.resolveSubject(ctx, *req.Subject)
		if err != nil {
			return nil, err
		}
		material.SubjectID = subject.ID
	}
	if req.Class != nil {
		class, err := s.resolveClass(ctx, *req.Class)
		if err != nil {
			return nil, err
		}
		material.ClassID = class.ID
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "title cannot be empty")
		}
		material.Title = *req.Title
	}
	if req.Description != nil {
		material.Description = req.Description
	}
	if req.Body != nil {
		material.Body = req.Body
	}
	if req.Notes != nil {
		material.Notes = req.Notes
	}
	if req.MediaURL != nil {
		material.MediaURL = req.MediaURL
	}

	if err := s.materials.Update(ctx, material); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update material")
	}
	return material, nil
}

// Delete removes a material after the ownership check. The relational
// delete is authoritative; removing the attached blob is best-effort and
// never rolls back the row deletion.
func (s *MaterialService) Delete(ctx context.Context, materialID, callerProfileID string) error {
	material, err := s.loadOwned(ctx, materialID, callerProfileID)
	if err != nil {
		return err
	}

	if err := s.materials.Delete(ctx, materialID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete material")
	}

	if folder, name, ok := splitBlobRef(material.MediaURL); ok && s.blob != nil {
		if err := s.blob.Delete(ctx, folder, name); err != nil {
			s.logger.Warn("failed to delete material attachment",
				zap.String("material_id", materialID),
				zap.Error(err))
		}
	}
	return nil
}

// Download describes how to fetch a material's attachment. Absolute
// http(s) references redirect; stored blobs get a signed short-lived
// token for the public file endpoint.
func (s *MaterialService) Download(ctx context.Context, materialID string) (*MaterialDownload, error) {
	material, err := s.Get(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material.MediaURL == nil || *material.MediaURL == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "material has no attachment")
	}

	ref := *material.MediaURL
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return &MaterialDownload{RedirectURL: ref}, nil
	}

	if s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "downloads are not configured")
	}
	rel := strings.TrimPrefix(ref, "/")
	token, _, err := s.signer.Generate(rel)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download")
	}
	return &MaterialDownload{Token: token, FileName: path.Base(rel)}, nil
}

// MarkComplete records that the calling student finished a material.
// Idempotent: repeated calls leave a single mark with done = true.
func (s *MaterialService) MarkComplete(ctx context.Context, studentProfileID, materialID string) (*models.CompletionMark, error) {
	if studentProfileID == "" {
		return nil, appErrors.ErrProfileMissing
	}
	if materialID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "material id is required")
	}

	mark, err := s.completions.MarkComplete(ctx, studentProfileID, materialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material or student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark completion")
	}
	return mark, nil
}

// CompletionStatus reports whether the calling student completed a
// material. An absent mark reads as not done.
func (s *MaterialService) CompletionStatus(ctx context.Context, studentProfileID, materialID string) (bool, error) {
	if studentProfileID == "" {
		return false, appErrors.ErrProfileMissing
	}
	mark, err := s.completions.FindMark(ctx, studentProfileID, materialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check completion")
	}
	return mark.Done, nil
}

func (s *MaterialService) loadOwned(ctx context.Context, materialID, callerProfileID string) (*models.Material, error) {
	if callerProfileID == "" {
		return nil, appErrors.ErrProfileMissing
	}
	material, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}
	if material.TeacherID != callerProfileID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "material belongs to another teacher")
	}
	return material, nil
}

func (s *MaterialService) resolveSubject(ctx context.Context, ref string) (*models.Subject, error) {
	subject, err := s.refs.FindSubject(ctx, strings.TrimSpace(ref))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown subject reference")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve subject")
	}
	return subject, nil
}

func (s *MaterialService) resolveClass(ctx context.Context, ref string) (*models.Class, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class is required")
	}
	class, err := s.refs.FindClass(ctx, ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown class reference")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve class")
	}
	return class, nil
}

// splitBlobRef turns a stored relative media reference such as
// "math/lesson1.pdf" into folder and file components. Absolute URLs and
// bare file names yield ok = false.
func splitBlobRef(ref *string) (folder, name string, ok bool) {
	if ref == nil || *ref == "" {
		return "", "", false
	}
	raw := strings.TrimPrefix(*ref, "/")
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return "", "", false
	}
	dir, file := path.Split(raw)
	dir = strings.Trim(dir, "/")
	if dir == "" || file == "" {
		return "", "", false
	}
	return dir, file, true
}
