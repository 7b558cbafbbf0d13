package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/session"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

const testCookie = "as_admin_session"

type MockSessionResolver struct {
	mock.Mock
}

func (m *MockSessionResolver) Lookup(ctx context.Context, token string) (*domain.AdminSession, error) {
	args := m.Called(ctx, token)
	if sess := args.Get(0); sess != nil {
		return sess.(*domain.AdminSession), args.Error(1)
	}
	return nil, args.Error(1)
}

type SessionGateSuite struct {
	suite.Suite
	resolver *MockSessionResolver
	app      *fiber.App
	seen     *domain.AdminSession
}

func (s *SessionGateSuite) SetupTest() {
	s.resolver = new(MockSessionResolver)
	s.seen = nil

	s.app = fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Message)
		},
	})
	gate := NewSessionGate(s.resolver, testCookie, "/admin/login", nil)
	admin := s.app.Group("/admin", gate.Handle)
	admin.Get("/login", func(c *fiber.Ctx) error { return c.SendString("login page") })
	admin.Get("/dashboard", func(c *fiber.Ctx) error {
		s.seen, _ = SessionFromContext(c)
		return c.SendString("dashboard")
	})
	admin.Get("/accounts", RequireRole(domain.AdminRoleSuperAdmin), func(c *fiber.Ctx) error {
		return c.SendString("accounts")
	})
	admin.Get("/shipments", RequirePermission(domain.PermissionShipmentsWrite), func(c *fiber.Ctx) error {
		return c.SendString("shipments")
	})
}

func (s *SessionGateSuite) TearDownTest() {
	s.resolver.AssertExpectations(s.T())
}

func (s *SessionGateSuite) do(path, token string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	return resp
}

func (s *SessionGateSuite) TestLoginPathPassesWithoutLookup() {
	resp := s.do("/admin/login", "")
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.do("/admin/login", "stale-token")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.resolver.AssertNotCalled(s.T(), "Lookup", mock.Anything, mock.Anything)
}

func (s *SessionGateSuite) TestMissingSessionRedirects() {
	s.resolver.On("Lookup", mock.Anything, "").Return(nil, session.ErrInvalid)

	resp := s.do("/admin/dashboard", "")
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/admin/login", resp.Header.Get("Location"))
	s.Nil(s.seen)
}

func (s *SessionGateSuite) TestInvalidSessionRedirectsAndClearsCookie() {
	s.resolver.On("Lookup", mock.Anything, "forged").Return(nil, session.ErrInvalid)

	resp := s.do("/admin/dashboard", "forged")
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/admin/login", resp.Header.Get("Location"))
	s.Contains(resp.Header.Get("Set-Cookie"), testCookie+"=")
}

func (s *SessionGateSuite) TestStoreFailureRedirects() {
	s.resolver.On("Lookup", mock.Anything, "tok").Return(nil, errors.New("redis down"))

	resp := s.do("/admin/dashboard", "tok")
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Nil(s.seen)
}

func (s *SessionGateSuite) TestValidSessionPasses() {
	sess := &domain.AdminSession{ID: "s1", AdminID: "a1", Role: domain.AdminRoleAdmin, Email: "ops@alliance.test"}
	s.resolver.On("Lookup", mock.Anything, "good").Return(sess, nil)

	resp := s.do("/admin/dashboard", "good")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().NotNil(s.seen)
	s.Equal("ops@alliance.test", s.seen.Email)
}

func (s *SessionGateSuite) TestRoleGuard() {
	moderator := &domain.AdminSession{ID: "s2", Role: domain.AdminRoleModerator}
	s.resolver.On("Lookup", mock.Anything, "mod").Return(moderator, nil)

	resp := s.do("/admin/accounts", "mod")
	s.Equal(http.StatusForbidden, resp.StatusCode)

	root := &domain.AdminSession{ID: "s3", Role: domain.AdminRoleSuperAdmin}
	s.resolver.On("Lookup", mock.Anything, "root").Return(root, nil)

	resp = s.do("/admin/accounts", "root")
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *SessionGateSuite) TestPermissionGuard() {
	plain := &domain.AdminSession{ID: "s4", Role: domain.AdminRoleModerator}
	s.resolver.On("Lookup", mock.Anything, "plain").Return(plain, nil)
	resp := s.do("/admin/shipments", "plain")
	s.Equal(http.StatusForbidden, resp.StatusCode)

	granted := &domain.AdminSession{
		ID:          "s5",
		Role:        domain.AdminRoleModerator,
		Permissions: domain.NewPermissions(domain.PermissionShipmentsWrite),
	}
	s.resolver.On("Lookup", mock.Anything, "granted").Return(granted, nil)
	resp = s.do("/admin/shipments", "granted")
	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestSessionGateSuite(t *testing.T) {
	suite.Run(t, new(SessionGateSuite))
}
