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

type mockMaterialRepo struct {
	materials map[string]*models.Material
	createErr error
	updated   *models.Material
	deleted   []string
}

func (m *mockMaterialRepo) Create(ctx context.Context, material *models.Material) error {
	if m.createErr != nil {
		return m.createErr
	}
	material.ID = "m-1"
	if m.materials == nil {
		m.materials = make(map[string]*models.Material)
	}
	m.materials[material.ID] = material
	return nil
}

func (m *mockMaterialRepo) FindByID(ctx context.Context, id string) (*models.Material, error) {
	material, ok := m.materials[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *material
	return &copied, nil
}

func (m *mockMaterialRepo) ListByClass(ctx context.Context, classID string) ([]models.Material, error) {
	var out []models.Material
	for _, material := range m.materials {
		if material.ClassID == classID {
			out = append(out, *material)
		}
	}
	return out, nil
}

func (m *mockMaterialRepo) Update(ctx context.Context, material *models.Material) error {
	m.updated = material
	m.materials[material.ID] = material
	return nil
}

func (m *mockMaterialRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.materials, id)
	return nil
}

type mockCompletionRepo struct {
	marks   map[string]*models.CompletionMark
	markErr error
}

func (m *mockCompletionRepo) MarkComplete(ctx context.Context, studentID, materialID string) (*models.CompletionMark, error) {
	if m.markErr != nil {
		return nil, m.markErr
	}
	key := studentID + "/" + materialID
	if m.marks == nil {
		m.marks = make(map[string]*models.CompletionMark)
	}
	mark, ok := m.marks[key]
	if !ok {
		mark = &models.CompletionMark{ID: "c-" + key, StudentID: studentID, MaterialID: materialID, Done: true}
		m.marks[key] = mark
	}
	return mark, nil
}

func (m *mockCompletionRepo) FindMark(ctx context.Context, studentID, materialID string) (*models.CompletionMark, error) {
	mark, ok := m.marks[studentID+"/"+materialID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return mark, nil
}

type mockResolver struct {
	subjects map[string]*models.Subject
	classes  map[string]*models.Class
}

func (m *mockResolver) FindSubject(ctx context.Context, ref string) (*models.Subject, error) {
	subject, ok := m.subjects[ref]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return subject, nil
}

func (m *mockResolver) FindClass(ctx context.Context, ref string) (*models.Class, error) {
	class, ok := m.classes[ref]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return class, nil
}

func newTestResolver() *mockResolver {
	return &mockResolver{
		subjects: map[string]*models.Subject{
			"math":       {ID: "math", Name: "Matematika"},
			"Matematika": {ID: "math", Name: "Matematika"},
		},
		classes: map[string]*models.Class{
			"10A": {ID: "10A", Name: "Kelas 10A", GradeNumber: 10, Level: "SMA"},
		},
	}
}

func TestMaterialServiceCreate(t *testing.T) {
	materials := &mockMaterialRepo{}
	svc := NewMaterialService(materials, &mockCompletionRepo{}, newTestResolver(), nil, nil, nil, nil)

	material, err := svc.Create(context.Background(), "tp-1", CreateMaterialRequest{
		Subject: "Matematika",
		Class:   "10A",
		Title:   "Aljabar Linear",
	})
	require.NoError(t, err)
	assert.Equal(t, "tp-1", material.TeacherID)
	assert.Equal(t, "math", material.SubjectID)
	assert.Equal(t, "10A", material.ClassID)
}

func TestMaterialServiceCreateUnknownClassFailsClosed(t *testing.T) {
	svc := NewMaterialService(&mockMaterialRepo{}, &mockCompletionRepo{}, newTestResolver(), nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), "tp-1", CreateMaterialRequest{
		Subject: "math",
		Class:   "13Z",
		Title:   "Misdirected",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestMaterialServiceCreateWithoutProfile(t *testing.T) {
	svc := NewMaterialService(&mockMaterialRepo{}, &mockCompletionRepo{}, newTestResolver(), nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), "", CreateMaterialRequest{Subject: "math", Class: "10A", Title: "X"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrProfileMissing.Code, appErr.Code)
}

func TestMaterialServiceUpdateByOtherTeacherForbidden(t *testing.T) {
	materials := &mockMaterialRepo{materials: map[string]*models.Material{
		"m-1": {ID: "m-1", TeacherID: "teacher-a", SubjectID: "math", ClassID: "10A", Title: "Bab 1"},
	}}
	svc := NewMaterialService(materials, &mockCompletionRepo{}, newTestResolver(), nil, nil, nil, nil)

	title := "Hijacked"
	_, err := svc.Update(context.Background(), "m-1", "teacher-b", UpdateMaterialRequest{Title: &title})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	assert.Nil(t, materials.updated)
}

func TestMaterialServiceUpdateByOwner(t *testing.T) {
	materials := &mockMaterialRepo{materials: map[string]*models.Material{
		"m-1": {ID: "m-1", TeacherID: "teacher-a", SubjectID: "math", ClassID: "10A", Title: "Bab 1"},
	}}
	svc := NewMaterialService(materials, &mockCompletionRepo{}, newTestResolver(), nil, nil, nil, nil)

	title := "Bab 1 (revisi)"
	material, err := svc.Update(context.Background(), "m-1", "teacher-a", UpdateMaterialRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Bab 1 (revisi)", material.Title)
	assert.Equal(t, "teacher-a", material.TeacherID)
}

func TestMaterialServiceDeleteByOtherTeacherForbidden(t *testing.T) {
	materials := &mockMaterialRepo{materials: map[string]*models.Material{
		"m-1": {ID: "m-1", TeacherID: "teacher-a", SubjectID: "math", ClassID: "10A", Title: "Bab 1"},
	}}
	svc := NewMaterialService(materials, &mockCompletionRepo{}, newTestResolver(), nil, nil, nil, nil)

	err := svc.Delete(context.Background(), "m-1", "teacher-b")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	assert.Empty(t, materials.deleted)
}

func TestMaterialServiceMarkCompleteIdempotent(t *testing.T) {
	completions := &mockCompletionRepo{}
	svc := NewMaterialService(&mockMaterialRepo{}, completions, newTestResolver(), nil, nil, nil, nil)

	first, err := svc.MarkComplete(context.Background(), "sp-1", "m-1")
	require.NoError(t, err)
	second, err := svc.MarkComplete(context.Background(), "sp-1", "m-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Done)
	assert.Len(t, completions.marks, 1)
}

func TestMaterialServiceMarkCompleteUnknownMaterial(t *testing.T) {
	svc := NewMaterialService(&mockMaterialRepo{}, &mockCompletionRepo{markErr: sql.ErrNoRows}, newTestResolver(), nil, nil, nil, nil)

	_, err := svc.MarkComplete(context.Background(), "sp-1", "missing")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestMaterialServiceCompletionStatusAbsentMark(t *testing.T) {
	svc := NewMaterialService(&mockMaterialRepo{}, &mockCompletionRepo{}, newTestResolver(), nil, nil, nil, nil)

	done, err := svc.CompletionStatus(context.Background(), "sp-1", "m-1")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestMaterialServiceDownloadRedirectsExternalMedia(t *testing.T) {
	url := "https://videos.example.com/lesson.mp4"
	materials := &mockMaterialRepo{materials: map[string]*models.Material{
		"m-1": {ID: "m-1", TeacherID: "teacher-a", MediaURL: &url},
	}}
	svc := NewMaterialService(materials, &mockCompletionRepo{}, newTestResolver(), nil, nil, nil, nil)

	download, err := svc.Download(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Equal(t, url, download.RedirectURL)
	assert.Empty(t, download.Token)
}

func TestMaterialServiceDownloadWithoutAttachment(t *testing.T) {
	materials := &mockMaterialRepo{materials: map[string]*models.Material{
		"m-1": {ID: "m-1", TeacherID: "teacher-a"},
	}}
	svc := NewMaterialService(materials, &mockCompletionRepo{}, newTestResolver(), nil, nil, nil, nil)

	_, err := svc.Download(context.Background(), "m-1")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
