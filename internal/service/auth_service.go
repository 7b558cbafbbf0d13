package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/alliance-shipping/backoffice/internal/auth"
	"github.com/alliance-shipping/backoffice/internal/config"
	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/events"
	"github.com/alliance-shipping/backoffice/internal/observability"
	"github.com/alliance-shipping/backoffice/internal/repository"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

// Client-facing login messages. Unknown email and wrong password share one message.
const (
	msgCredentialsRequired = "email and password are required"
	msgInvalidCredentials  = "invalid credentials"
	msgAccessDenied        = "access denied"
	minPasswordLength      = 8
)

// SessionIssuer writes and revokes admin sessions.
type SessionIssuer interface {
	Issue(ctx context.Context, s *domain.AdminSession) (string, time.Time, error)
	Revoke(ctx context.Context, token string) error
}

// AuthService coordinates the admin login handshake.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	sessions   SessionIssuer
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	AdminRepo  repository.AdminRepository
	Sessions   SessionIssuer
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// LoginResult is handed to the transport layer after a successful login.
type LoginResult struct {
	Session   *domain.AdminSession
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login verifies credentials and issues a session.
//
// Errors are DomainErrors: 400 for missing input, 401 for an unknown email or a wrong
// password (identical in both cases), 403 when the user has no active admin record with
// a password, 500 for anything else.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		s.metrics.RecordLogin(observability.LoginInvalidInput)
		return nil, apperrors.NewValidationError(msgCredentialsRequired, nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		auth.BurnPasswordCheck(password)
		s.metrics.RecordLogin(observability.LoginRejected)
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}
	if err != nil {
		s.metrics.RecordLogin(observability.LoginFailed)
		return nil, apperrors.NewInternalError(err)
	}

	admin, err := s.admins.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.metrics.RecordLogin(observability.LoginFailed)
		return nil, apperrors.NewInternalError(err)
	}
	if !admin.CanLogin() {
		s.metrics.RecordLogin(observability.LoginForbidden)
		s.logger.Info("admin login denied", zap.String("user_id", user.ID))
		return nil, apperrors.NewForbidden(msgAccessDenied)
	}

	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		s.metrics.RecordLogin(observability.LoginRejected)
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	permissions := admin.Permissions
	if permissions == nil {
		permissions = domain.Permissions{}
	}
	sess := &domain.AdminSession{
		AdminID:     admin.ID,
		UserID:      user.ID,
		Role:        admin.Role,
		Email:       user.Email,
		Permissions: permissions,
	}
	token, expiresAt, err := s.sessions.Issue(ctx, sess)
	if err != nil {
		s.metrics.RecordLogin(observability.LoginFailed)
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.admins.TouchLastLogin(ctx, admin.ID); err != nil {
		s.logger.Warn("record last login", zap.String("admin_id", admin.ID), zap.Error(err))
	}
	s.metrics.RecordLogin(observability.LoginSucceeded)
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventAdminLoggedIn,
		Subject: admin.ID,
		Actor:   adminActor(sess),
		Payload: events.AdminLoggedInPayload{Role: admin.Role},
	})

	return &LoginResult{Session: sess, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes the session behind token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, sess *domain.AdminSession, currentPassword, newPassword string) error {
	if sess == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if currentPassword == "" || newPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("new password too short", map[string]any{"min_length": minPasswordLength})
	}

	admin, err := s.admins.GetByID(ctx, sess.AdminID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.admins.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
