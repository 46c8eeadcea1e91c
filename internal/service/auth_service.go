package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/educore-id/educore-api/internal/models"
	"github.com/educore-id/educore-api/internal/repository"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
)

type authAccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	CreateStudent(ctx context.Context, account *models.Account, profile *models.StudentProfile) error
	CreateTeacher(ctx context.Context, account *models.Account, profile *models.TeacherProfile) error
}

type authSessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

type authProfileRepository interface {
	FindStudentByAccount(ctx context.Context, accountID string) (*models.StudentProfile, error)
	FindTeacherByAccount(ctx context.Context, accountID string) (*models.TeacherProfile, error)
}

type authMetrics interface {
	IncLogin(role string)
	IncSessionPurged()
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	SessionTTL time.Duration
}

// AuthService provides registration, login and session resolution.
type AuthService struct {
	accounts  authAccountRepository
	sessions  authSessionRepository
	profiles  authProfileRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   authMetrics
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(accounts authAccountRepository, sessions authSessionRepository, profiles authProfileRepository, validate *validator.Validate, logger *zap.Logger, metrics authMetrics, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 168 * time.Hour
	}
	return &AuthService{
		accounts:  accounts,
		sessions:  sessions,
		profiles:  profiles,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		config:    config,
	}
}

// RegisterStudent creates an account and student profile transactionally.
func (s *AuthService) RegisterStudent(ctx context.Context, req models.RegisterStudentRequest) (*models.Account, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	account := &models.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
		AvatarURL:    req.AvatarURL,
	}
	profile := &models.StudentProfile{
		FullName:      req.FullName,
		GradeLevel:    req.GradeLevel,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
	}

	if err := s.accounts.CreateStudent(ctx, account, profile); err != nil {
		return nil, mapRegistrationError(err)
	}

	s.logger.Info("student registered", zap.String("account_id", account.ID))
	return account, nil
}

// RegisterTeacher creates an account and teacher profile transactionally.
func (s *AuthService) RegisterTeacher(ctx context.Context, req models.RegisterTeacherRequest) (*models.Account, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	account := &models.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleTeacher,
		AvatarURL:    req.AvatarURL,
	}
	profile := &models.TeacherProfile{
		FullName:    req.FullName,
		Address:     req.Address,
		AddressProv: req.AddressProv,
		AddressCity: req.AddressCity,
	}

	if err := s.accounts.CreateTeacher(ctx, account, profile); err != nil {
		return nil, mapRegistrationError(err)
	}

	s.logger.Info("teacher registered", zap.String("account_id", account.ID))
	return account, nil
}

// Login authenticates credentials and opens a session. Multiple sessions
// per account may coexist.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid email or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "database unavailable")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid email or password")
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	session := &models.Session{
		Token:     token,
		AccountID: account.ID,
		ExpiresAt: time.Now().UTC().Add(s.config.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to persist session")
	}

	profileID := s.resolveProfileID(ctx, account)
	if s.metrics != nil {
		s.metrics.IncLogin(string(account.Role))
	}
	s.logger.Info("login successful", zap.String("account_id", account.ID), zap.String("role", string(account.Role)))

	resp := &models.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User: models.UserInfo{
			ID:    account.ID,
			Email: account.Email,
			Role:  account.Role,
		},
	}
	if profileID != "" {
		resp.ProfileID = &profileID
	}
	return resp, nil
}

// Logout invalidates the session token. Absent tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return appErrors.Clone(appErrors.ErrUnauthenticated, "missing token")
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to delete session")
	}
	return nil
}

// Authenticate resolves a raw bearer token into a request identity.
// Expired sessions are purged on the spot and treated as unauthenticated;
// a missing profile row does not fail authentication, it just leaves
// ProfileID empty.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "missing token")
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid token")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "database unavailable")
	}

	if session.Expired(time.Now().UTC()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.logger.Warn("failed to purge expired session", zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.IncSessionPurged()
		}
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "session expired")
	}

	account, err := s.accounts.FindByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "account no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "database unavailable")
	}

	return &models.Identity{
		AccountID: account.ID,
		Role:      account.Role,
		ProfileID: s.resolveProfileID(ctx, account),
	}, nil
}

func (s *AuthService) resolveProfileID(ctx context.Context, account *models.Account) string {
	switch account.Role {
	case models.RoleStudent:
		profile, err := s.profiles.FindStudentByAccount(ctx, account.ID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				s.logger.Warn("failed to resolve student profile", zap.Error(err))
			}
			return ""
		}
		return profile.ID
	case models.RoleTeacher:
		profile, err := s.profiles.FindTeacherByAccount(ctx, account.ID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				s.logger.Warn("failed to resolve teacher profile", zap.Error(err))
			}
			return ""
		}
		return profile.ID
	}
	return ""
}

func mapRegistrationError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "registration failed")
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, repository.ErrEmailTaken) {
		return appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "registration failed")
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
