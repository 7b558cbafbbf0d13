package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/alliance-shipping/backoffice/internal/auth"
	"github.com/alliance-shipping/backoffice/internal/config"
	"github.com/alliance-shipping/backoffice/internal/domain"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

const (
	testEmail    = "dispatch@allianceshipping.test"
	testPassword = "Port-au-Prince-1804"
)

type AuthServiceSuite struct {
	suite.Suite
	users    *MockUserRepository
	admins   *MockAdminRepository
	sessions *MockSessionIssuer
	service  *AuthService
	hash     string
	user     *domain.User
}

func (s *AuthServiceSuite) SetupSuite() {
	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	s.Require().NoError(err)
	s.hash = hash
}

func (s *AuthServiceSuite) SetupTest() {
	s.users = new(MockUserRepository)
	s.admins = new(MockAdminRepository)
	s.sessions = new(MockSessionIssuer)
	s.user = &domain.User{ID: "user-1", Email: testEmail, Name: "Dispatch"}

	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	s.service = NewAuthService(cfg, AuthDependencies{
		UserRepo:  s.users,
		AdminRepo: s.admins,
		Sessions:  s.sessions,
	})
}

func (s *AuthServiceSuite) TearDownTest() {
	s.users.AssertExpectations(s.T())
	s.admins.AssertExpectations(s.T())
	s.sessions.AssertExpectations(s.T())
}

func (s *AuthServiceSuite) activeAdmin() *domain.Admin {
	return &domain.Admin{
		ID:           "admin-1",
		UserID:       "user-1",
		PasswordHash: s.hash,
		Role:         domain.AdminRoleModerator,
		Active:       true,
		Permissions:  domain.NewPermissions(domain.PermissionMessagesRead),
	}
}

func (s *AuthServiceSuite) assertDomainError(err error, status int, message string) *apperrors.DomainError {
	s.Require().Error(err)
	var de *apperrors.DomainError
	s.Require().True(errors.As(err, &de), "expected DomainError, got %T", err)
	s.Equal(status, de.HTTPStatus)
	s.Equal(message, de.Message)
	return de
}

func (s *AuthServiceSuite) TestMissingFieldsAreValidationErrors() {
	for _, tc := range []struct{ email, password string }{
		{"", testPassword},
		{testEmail, ""},
		{"   ", testPassword},
		{"", ""},
	} {
		_, err := s.service.Login(context.Background(), tc.email, tc.password)
		s.assertDomainError(err, http.StatusBadRequest, msgCredentialsRequired)
	}
	s.sessions.AssertNotCalled(s.T(), "Issue", mock.Anything, mock.Anything)
}

func (s *AuthServiceSuite) TestUnknownEmailAndWrongPasswordLookIdentical() {
	s.users.On("GetByEmail", mock.Anything, "ghost@allianceshipping.test").Return(nil, pgx.ErrNoRows).Once()
	_, unknownErr := s.service.Login(context.Background(), "ghost@allianceshipping.test", testPassword)
	unknown := s.assertDomainError(unknownErr, http.StatusUnauthorized, msgInvalidCredentials)

	s.users.On("GetByEmail", mock.Anything, testEmail).Return(s.user, nil).Once()
	s.admins.On("GetByUserID", mock.Anything, "user-1").Return(s.activeAdmin(), nil).Once()
	_, wrongErr := s.service.Login(context.Background(), testEmail, "not-the-password")
	wrong := s.assertDomainError(wrongErr, http.StatusUnauthorized, msgInvalidCredentials)

	s.Equal(unknown.Code, wrong.Code)
	s.Equal(unknown.Message, wrong.Message)
	s.Equal(unknown.Details, wrong.Details)
	s.Equal(unknownErr.Error(), wrongErr.Error())
	s.sessions.AssertNotCalled(s.T(), "Issue", mock.Anything, mock.Anything)
}

func (s *AuthServiceSuite) TestNoAdminRecordIsForbidden() {
	s.users.On("GetByEmail", mock.Anything, testEmail).Return(s.user, nil)
	s.admins.On("GetByUserID", mock.Anything, "user-1").Return(nil, pgx.ErrNoRows)

	_, err := s.service.Login(context.Background(), testEmail, testPassword)
	s.assertDomainError(err, http.StatusForbidden, msgAccessDenied)
}

func (s *AuthServiceSuite) TestInactiveAdminIsForbidden() {
	admin := s.activeAdmin()
	admin.Active = false
	s.users.On("GetByEmail", mock.Anything, testEmail).Return(s.user, nil)
	s.admins.On("GetByUserID", mock.Anything, "user-1").Return(admin, nil)

	_, err := s.service.Login(context.Background(), testEmail, testPassword)
	s.assertDomainError(err, http.StatusForbidden, msgAccessDenied)
}

func (s *AuthServiceSuite) TestMissingHashIsForbiddenWithSameMessage() {
	admin := s.activeAdmin()
	admin.PasswordHash = ""
	s.users.On("GetByEmail", mock.Anything, testEmail).Return(s.user, nil)
	s.admins.On("GetByUserID", mock.Anything, "user-1").Return(admin, nil)

	_, err := s.service.Login(context.Background(), testEmail, testPassword)
	s.assertDomainError(err, http.StatusForbidden, msgAccessDenied)
}

func (s *AuthServiceSuite) TestMalformedHashIsRejected() {
	admin := s.activeAdmin()
	admin.PasswordHash = "plaintext-legacy"
	s.users.On("GetByEmail", mock.Anything, testEmail).Return(s.user, nil)
	s.admins.On("GetByUserID", mock.Anything, "user-1").Return(admin, nil)

	_, err := s.service.Login(context.Background(), testEmail, "plaintext-legacy")
	s.assertDomainError(err, http.StatusUnauthorized, msgInvalidCredentials)
}

func (s *AuthServiceSuite) TestSuccessfulLoginIssuesSession() {
	expires := time.Now().Add(time.Hour)
	s.users.On("GetByEmail", mock.Anything, testEmail).Return(s.user, nil)
	s.admins.On("GetByUserID", mock.Anything, "user-1").Return(s.activeAdmin(), nil)
	s.admins.On("TouchLastLogin", mock.Anything, "admin-1").Return(nil)
	s.sessions.On("Issue", mock.Anything, mock.MatchedBy(func(sess *domain.AdminSession) bool {
		return sess.AdminID == "admin-1" &&
			sess.UserID == "user-1" &&
			sess.Email == testEmail &&
			sess.Role == domain.AdminRoleModerator &&
			sess.Permissions.Has(domain.PermissionMessagesRead)
	})).Return("signed-token", expires, nil)

	result, err := s.service.Login(context.Background(), testEmail, testPassword)
	s.Require().NoError(err)
	s.Equal("signed-token", result.Token)
	s.Equal(expires, result.ExpiresAt)
	s.Equal(domain.AdminRoleModerator, result.Session.Role)
}

func (s *AuthServiceSuite) TestUnsetPermissionsDefaultToEmptySet() {
	admin := s.activeAdmin()
	admin.Permissions = nil
	s.users.On("GetByEmail", mock.Anything, testEmail).Return(s.user, nil)
	s.admins.On("GetByUserID", mock.Anything, "user-1").Return(admin, nil)
	s.admins.On("TouchLastLogin", mock.Anything, "admin-1").Return(nil)
	s.sessions.On("Issue", mock.Anything, mock.MatchedBy(func(sess *domain.AdminSession) bool {
		return sess.Permissions != nil && len(sess.Permissions) == 0
	})).Return("tok", time.Now().Add(time.Hour), nil)

	_, err := s.service.Login(context.Background(), testEmail, testPassword)
	s.NoError(err)
}

func (s *AuthServiceSuite) TestLastLoginFailureDoesNotBlockLogin() {
	s.users.On("GetByEmail", mock.Anything, testEmail).Return(s.user, nil)
	s.admins.On("GetByUserID", mock.Anything, "user-1").Return(s.activeAdmin(), nil)
	s.admins.On("TouchLastLogin", mock.Anything, "admin-1").Return(errors.New("read-only replica"))
	s.sessions.On("Issue", mock.Anything, mock.Anything).Return("tok", time.Now().Add(time.Hour), nil)

	_, err := s.service.Login(context.Background(), testEmail, testPassword)
	s.NoError(err)
}

func (s *AuthServiceSuite) TestStoreOutageIsInternalAndHidden() {
	s.users.On("GetByEmail", mock.Anything, testEmail).Return(nil, errors.New("dial tcp db:5432: connection refused"))

	_, err := s.service.Login(context.Background(), testEmail, testPassword)
	de := s.assertDomainError(err, http.StatusInternalServerError, "internal server error")
	s.Equal("INTERNAL_ERROR", de.Code)
	s.NotContains(de.Message, "5432")
}

func (s *AuthServiceSuite) TestSessionStoreOutageIsInternal() {
	s.users.On("GetByEmail", mock.Anything, testEmail).Return(s.user, nil)
	s.admins.On("GetByUserID", mock.Anything, "user-1").Return(s.activeAdmin(), nil)
	s.sessions.On("Issue", mock.Anything, mock.Anything).Return("", time.Time{}, errors.New("redis: i/o timeout"))

	_, err := s.service.Login(context.Background(), testEmail, testPassword)
	s.assertDomainError(err, http.StatusInternalServerError, "internal server error")
}

func (s *AuthServiceSuite) TestLogout() {
	s.NoError(s.service.Logout(context.Background(), ""))

	s.sessions.On("Revoke", mock.Anything, "tok").Return(nil)
	s.NoError(s.service.Logout(context.Background(), "tok"))
}

func (s *AuthServiceSuite) TestChangePassword() {
	sess := &domain.AdminSession{AdminID: "admin-1"}

	err := s.service.ChangePassword(context.Background(), sess, testPassword, "short")
	s.assertDomainError(err, http.StatusBadRequest, "new password too short")

	s.admins.On("GetByID", mock.Anything, "admin-1").Return(s.activeAdmin(), nil)
	err = s.service.ChangePassword(context.Background(), sess, "wrong-current", "Cap-Haitien-2025")
	s.assertDomainError(err, http.StatusUnauthorized, msgInvalidCredentials)

	s.admins.On("UpdatePassword", mock.Anything, "admin-1", mock.MatchedBy(func(hash string) bool {
		return auth.ComparePassword(hash, "Cap-Haitien-2025") == nil
	})).Return(nil)
	s.NoError(s.service.ChangePassword(context.Background(), sess, testPassword, "Cap-Haitien-2025"))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}
