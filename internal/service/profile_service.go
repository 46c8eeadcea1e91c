package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/educore-id/educore-api/internal/models"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
)

type profileRepository interface {
	FindStudentByAccount(ctx context.Context, accountID string) (*models.StudentProfile, error)
	FindTeacherByAccount(ctx context.Context, accountID string) (*models.TeacherProfile, error)
	UpdateStudent(ctx context.Context, profile *models.StudentProfile, avatarURL *string) (*models.StudentProfile, error)
	UpdateTeacher(ctx context.Context, profile *models.TeacherProfile, avatarURL *string) (*models.TeacherProfile, error)
}

// UpdateStudentProfileRequest carries the editable student profile fields.
type UpdateStudentProfileRequest struct {
	FullName      string  `json:"full_name" validate:"required"`
	AddressProv   *string `json:"address_province,omitempty"`
	AddressCity   *string `json:"address_city,omitempty"`
	Address       *string `json:"address,omitempty"`
	SchoolProv    *string `json:"school_province,omitempty"`
	SchoolCity    *string `json:"school_city,omitempty"`
	SchoolName    *string `json:"school_name,omitempty"`
	GradeLevel    string  `json:"grade_level" validate:"required"`
	GuardianName  string  `json:"guardian_name" validate:"required"`
	GuardianPhone string  `json:"guardian_phone" validate:"required,max=14"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
}

// UpdateTeacherProfileRequest carries the editable teacher profile fields.
type UpdateTeacherProfileRequest struct {
	FullName    string  `json:"full_name" validate:"required"`
	AddressProv *string `json:"address_province,omitempty"`
	AddressCity *string `json:"address_city,omitempty"`
	Address     *string `json:"address,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// ProfileService handles self-service profile reads and updates.
type ProfileService struct {
	repo      profileRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(repo profileRepository, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, validator: validate, logger: logger}
}

// GetStudent returns the caller's student profile.
func (s *ProfileService) GetStudent(ctx context.Context, accountID string) (*models.StudentProfile, error) {
	profile, err := s.repo.FindStudentByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return profile, nil
}

// GetTeacher returns the caller's teacher profile.
func (s *ProfileService) GetTeacher(ctx context.Context, accountID string) (*models.TeacherProfile, error) {
	profile, err := s.repo.FindTeacherByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return profile, nil
}

// UpdateStudent applies profile changes for the calling student account.
func (s *ProfileService) UpdateStudent(ctx context.Context, accountID string, req UpdateStudentProfileRequest) (*models.StudentProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	profile := &models.StudentProfile{
		AccountID:     accountID,
		FullName:      req.FullName,
		AddressProv:   req.AddressProv,
		AddressCity:   req.AddressCity,
		Address:       req.Address,
		SchoolProv:    req.SchoolProv,
		SchoolCity:    req.SchoolCity,
		SchoolName:    req.SchoolName,
		GradeLevel:    req.GradeLevel,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
	}

	updated, err := s.repo.UpdateStudent(ctx, profile, req.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	return updated, nil
}

// UpdateTeacher applies profile changes for the calling teacher account.
func (s *ProfileService) UpdateTeacher(ctx context.Context, accountID string, req UpdateTeacherProfileRequest) (*models.TeacherProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	profile := &models.TeacherProfile{
		AccountID:   accountID,
		FullName:    req.FullName,
		AddressProv: req.AddressProv,
		AddressCity: req.AddressCity,
		Address:     req.Address,
	}

	updated, err := s.repo.UpdateTeacher(ctx, profile, req.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	return updated, nil
}
