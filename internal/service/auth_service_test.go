package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/educore-id/educore-api/internal/models"
	"github.com/educore-id/educore-api/internal/repository"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
)

type mockAccountRepo struct {
	accountByEmail *models.Account
	accountByID    *models.Account
	findEmailErr   error
	findIDErr      error
	createErr      error
	created        *models.Account
}

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.findEmailErr != nil {
		return nil, m.findEmailErr
	}
	return m.accountByEmail, nil
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	if m.findIDErr != nil {
		return nil, m.findIDErr
	}
	return m.accountByID, nil
}

func (m *mockAccountRepo) CreateStudent(ctx context.Context, account *models.Account, profile *models.StudentProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	account.ID = "acc-1"
	m.created = account
	return nil
}

func (m *mockAccountRepo) CreateTeacher(ctx context.Context, account *models.Account, profile *models.TeacherProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	account.ID = "acc-1"
	m.created = account
	return nil
}

type mockSessionRepo struct {
	sessions  map[string]*models.Session
	createErr error
	findErr   error
	deleted   []string
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.sessions == nil {
		m.sessions = make(map[string]*models.Session)
	}
	m.sessions[session.Token] = session
	return nil
}

func (m *mockSessionRepo) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	session, ok := m.sessions[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return session, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	delete(m.sessions, token)
	return nil
}

type mockProfileLookup struct {
	student    *models.StudentProfile
	teacher    *models.TeacherProfile
	studentErr error
	teacherErr error
}

func (m *mockProfileLookup) FindStudentByAccount(ctx context.Context, accountID string) (*models.StudentProfile, error) {
	if m.studentErr != nil {
		return nil, m.studentErr
	}
	if m.student == nil {
		return nil, sql.ErrNoRows
	}
	return m.student, nil
}

func (m *mockProfileLookup) FindTeacherByAccount(ctx context.Context, accountID string) (*models.TeacherProfile, error) {
	if m.teacherErr != nil {
		return nil, m.teacherErr
	}
	if m.teacher == nil {
		return nil, sql.ErrNoRows
	}
	return m.teacher, nil
}

type mockAuthMetrics struct {
	logins        int
	purgedCount   int
	lastLoginRole string
}

func (m *mockAuthMetrics) IncLogin(role string) {
	m.logins++
	m.lastLoginRole = role
}

func (m *mockAuthMetrics) IncSessionPurged() { m.purgedCount++ }

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	account := &models.Account{
		ID:           "acc-1",
		Email:        "s@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         models.RoleStudent,
	}
	accounts := &mockAccountRepo{accountByEmail: account}
	sessions := &mockSessionRepo{}
	profiles := &mockProfileLookup{student: &models.StudentProfile{ID: "sp-1", AccountID: "acc-1"}}
	metrics := &mockAuthMetrics{}

	svc := NewAuthService(accounts, sessions, profiles, nil, nil, metrics, AuthConfig{SessionTTL: time.Hour})

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "s@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.True(t, res.ExpiresAt.After(time.Now()))
	require.NotNil(t, res.ProfileID)
	assert.Equal(t, "sp-1", *res.ProfileID)
	assert.Equal(t, 1, metrics.logins)
	assert.Equal(t, "student", metrics.lastLoginRole)
	assert.Len(t, sessions.sessions, 1)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	account := &models.Account{
		ID:           "acc-1",
		Email:        "s@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         models.RoleStudent,
	}
	svc := NewAuthService(&mockAccountRepo{accountByEmail: account}, &mockSessionRepo{}, &mockProfileLookup{}, nil, nil, &mockAuthMetrics{}, AuthConfig{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "s@example.com", Password: "wrongpassword"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErr.Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockAccountRepo{findEmailErr: sql.ErrNoRows}, &mockSessionRepo{}, &mockProfileLookup{}, nil, nil, &mockAuthMetrics{}, AuthConfig{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErr.Code)
	assert.Equal(t, "invalid email or password", appErr.Message)
}

func TestAuthServiceAuthenticateValidToken(t *testing.T) {
	account := &models.Account{ID: "acc-1", Role: models.RoleTeacher}
	sessions := &mockSessionRepo{sessions: map[string]*models.Session{
		"tok": {Token: "tok", AccountID: "acc-1", ExpiresAt: time.Now().UTC().Add(time.Hour)},
	}}
	profiles := &mockProfileLookup{teacher: &models.TeacherProfile{ID: "tp-1", AccountID: "acc-1"}}
	svc := NewAuthService(&mockAccountRepo{accountByID: account}, sessions, profiles, nil, nil, &mockAuthMetrics{}, AuthConfig{})

	identity, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", identity.AccountID)
	assert.Equal(t, models.RoleTeacher, identity.Role)
	assert.Equal(t, "tp-1", identity.ProfileID)
}

func TestAuthServiceAuthenticateExpiredSessionPurged(t *testing.T) {
	sessions := &mockSessionRepo{sessions: map[string]*models.Session{
		"old": {Token: "old", AccountID: "acc-1", ExpiresAt: time.Now().UTC().Add(-time.Minute)},
	}}
	metrics := &mockAuthMetrics{}
	svc := NewAuthService(&mockAccountRepo{}, sessions, &mockProfileLookup{}, nil, nil, metrics, AuthConfig{})

	_, err := svc.Authenticate(context.Background(), "old")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErr.Code)
	assert.Contains(t, sessions.deleted, "old")
	assert.Equal(t, 1, metrics.purgedCount)
}

func TestAuthServiceAuthenticateMissingProfile(t *testing.T) {
	account := &models.Account{ID: "acc-1", Role: models.RoleStudent}
	sessions := &mockSessionRepo{sessions: map[string]*models.Session{
		"tok": {Token: "tok", AccountID: "acc-1", ExpiresAt: time.Now().UTC().Add(time.Hour)},
	}}
	svc := NewAuthService(&mockAccountRepo{accountByID: account}, sessions, &mockProfileLookup{}, nil, nil, &mockAuthMetrics{}, AuthConfig{})

	identity, err := svc.Authenticate(context.Background(), "tok")
	require.NoError(t, err)
	assert.False(t, identity.HasProfile())
}

func TestAuthServiceAuthenticateMissingToken(t *testing.T) {
	svc := NewAuthService(&mockAccountRepo{}, &mockSessionRepo{}, &mockProfileLookup{}, nil, nil, &mockAuthMetrics{}, AuthConfig{})

	_, err := svc.Authenticate(context.Background(), "")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErr.Code)
}

func TestAuthServiceRegisterStudentDuplicateEmail(t *testing.T) {
	accounts := &mockAccountRepo{createErr: repository.ErrEmailTaken}
	svc := NewAuthService(accounts, &mockSessionRepo{}, &mockProfileLookup{}, nil, nil, &mockAuthMetrics{}, AuthConfig{})

	_, err := svc.RegisterStudent(context.Background(), models.RegisterStudentRequest{
		Email:         "dup@example.com",
		Password:      "password123",
		FullName:      "Student A",
		GradeLevel:    "10",
		GuardianName:  "Parent",
		GuardianPhone: "0812345678",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestAuthServiceRegisterStudentValidation(t *testing.T) {
	svc := NewAuthService(&mockAccountRepo{}, &mockSessionRepo{}, &mockProfileLookup{}, nil, nil, &mockAuthMetrics{}, AuthConfig{})

	_, err := svc.RegisterStudent(context.Background(), models.RegisterStudentRequest{Email: "not-an-email"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAuthServiceLogoutIdempotent(t *testing.T) {
	sessions := &mockSessionRepo{sessions: map[string]*models.Session{}}
	svc := NewAuthService(&mockAccountRepo{}, sessions, &mockProfileLookup{}, nil, nil, &mockAuthMetrics{}, AuthConfig{})

	require.NoError(t, svc.Logout(context.Background(), "never-existed"))
	require.NoError(t, svc.Logout(context.Background(), "never-existed"))
}
