package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educore-id/educore-api/internal/models"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
)

type mockProfileRepo struct {
	student       *models.StudentProfile
	teacher       *models.TeacherProfile
	updateErr     error
	lastAvatarURL *string
}

func (m *mockProfileRepo) FindStudentByAccount(ctx context.Context, accountID string) (*models.StudentProfile, error) {
	if m.student == nil {
		return nil, sql.ErrNoRows
	}
	return m.student, nil
}

func (m *mockProfileRepo) FindTeacherByAccount(ctx context.Context, accountID string) (*models.TeacherProfile, error) {
	if m.teacher == nil {
		return nil, sql.ErrNoRows
	}
	return m.teacher, nil
}

func (m *mockProfileRepo) UpdateStudent(ctx context.Context, profile *models.StudentProfile, avatarURL *string) (*models.StudentProfile, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastAvatarURL = avatarURL
	m.student = profile
	return profile, nil
}

func (m *mockProfileRepo) UpdateTeacher(ctx context.Context, profile *models.TeacherProfile, avatarURL *string) (*models.TeacherProfile, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.lastAvatarURL = avatarURL
	m.teacher = profile
	return profile, nil
}

func TestProfileServiceGetStudentMissing(t *testing.T) {
	svc := NewProfileService(&mockProfileRepo{}, nil, nil)

	_, err := svc.GetStudent(context.Background(), "acc-1")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrProfileMissing.Code, appErr.Code)
}

func TestProfileServiceGetStudent(t *testing.T) {
	repo := &mockProfileRepo{student: &models.StudentProfile{ID: "sp-1", AccountID: "acc-1", FullName: "Student A"}}
	svc := NewProfileService(repo, nil, nil)

	profile, err := svc.GetStudent(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "Student A", profile.FullName)
}

func TestProfileServiceUpdateStudent(t *testing.T) {
	repo := &mockProfileRepo{student: &models.StudentProfile{ID: "sp-1", AccountID: "acc-1", FullName: "Old Name", GradeLevel: "10"}}
	svc := NewProfileService(repo, nil, nil)

	avatar := "https://cdn.example.com/me.png"
	updated, err := svc.UpdateStudent(context.Background(), "acc-1", UpdateStudentProfileRequest{
		FullName:      "New Name",
		GradeLevel:    "11",
		GuardianName:  "Parent",
		GuardianPhone: "0812345678",
		AvatarURL:     &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "11", updated.GradeLevel)
	require.NotNil(t, repo.lastAvatarURL)
	assert.Equal(t, avatar, *repo.lastAvatarURL)
}

func TestProfileServiceUpdateStudentValidation(t *testing.T) {
	repo := &mockProfileRepo{student: &models.StudentProfile{ID: "sp-1"}}
	svc := NewProfileService(repo, nil, nil)

	_, err := svc.UpdateStudent(context.Background(), "acc-1", UpdateStudentProfileRequest{})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestProfileServiceUpdateTeacher(t *testing.T) {
	repo := &mockProfileRepo{teacher: &models.TeacherProfile{ID: "tp-1", AccountID: "acc-2", FullName: "Old"}}
	svc := NewProfileService(repo, nil, nil)

	updated, err := svc.UpdateTeacher(context.Background(), "acc-2", UpdateTeacherProfileRequest{FullName: "Guru Baru"})
	require.NoError(t, err)
	assert.Equal(t, "Guru Baru", updated.FullName)
}
