package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/service"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if r := args.Get(0); r != nil {
		return r.(*service.LoginResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthenticator) ChangePassword(ctx context.Context, sess *domain.AdminSession, currentPassword, newPassword string) error {
	return m.Called(ctx, sess, currentPassword, newPassword).Error(0)
}

type MockShipmentManager struct {
	mock.Mock
}

func (m *MockShipmentManager) Register(ctx context.Context, actor *domain.AdminSession, input service.ShipmentCreateInput) (*domain.Shipment, error) {
	args := m.Called(ctx, actor, input)
	if s := args.Get(0); s != nil {
		return s.(*domain.Shipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipmentManager) Lookup(ctx context.Context, code string) (*service.TrackingView, error) {
	args := m.Called(ctx, code)
	if v := args.Get(0); v != nil {
		return v.(*service.TrackingView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipmentManager) List(ctx context.Context, filter service.ShipmentListFilter) ([]domain.Shipment, error) {
	args := m.Called(ctx, filter)
	if l := args.Get(0); l != nil {
		return l.([]domain.Shipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipmentManager) UpdateStatus(ctx context.Context, actor *domain.AdminSession, code string, next domain.ShipmentStatus, location, note string) (*domain.Shipment, error) {
	args := m.Called(ctx, actor, code, next, location, note)
	if s := args.Get(0); s != nil {
		return s.(*domain.Shipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipmentManager) StatusSummary(ctx context.Context) (map[domain.ShipmentStatus]int64, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.(map[domain.ShipmentStatus]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockContactInbox struct {
	mock.Mock
}

func (m *MockContactInbox) Submit(ctx context.Context, input service.ContactInput) (*domain.ContactMessage, error) {
	args := m.Called(ctx, input)
	if msg := args.Get(0); msg != nil {
		return msg.(*domain.ContactMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockContactInbox) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.ContactMessage, error) {
	args := m.Called(ctx, unreadOnly, limit, offset)
	if l := args.Get(0); l != nil {
		return l.([]domain.ContactMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockContactInbox) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContactInbox) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAccountManager struct {
	mock.Mock
}

func (m *MockAccountManager) CreateAdmin(ctx context.Context, actor *domain.AdminSession, input service.CreateAdminInput) (*domain.AdminAccount, error) {
	args := m.Called(ctx, actor, input)
	if a := args.Get(0); a != nil {
		return a.(*domain.AdminAccount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountManager) ListAdmins(ctx context.Context, actor *domain.AdminSession, filters service.AdminListFilters) ([]domain.AdminAccount, error) {
	args := m.Called(ctx, actor, filters)
	if l := args.Get(0); l != nil {
		return l.([]domain.AdminAccount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountManager) SetActive(ctx context.Context, actor *domain.AdminSession, adminID string, active bool) error {
	return m.Called(ctx, actor, adminID, active).Error(0)
}

type MockSessionResolver struct {
	mock.Mock
}

func (m *MockSessionResolver) Lookup(ctx context.Context, token string) (*domain.AdminSession, error) {
	args := m.Called(ctx, token)
	if s := args.Get(0); s != nil {
		return s.(*domain.AdminSession), args.Error(1)
	}
	return nil, args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func sessionFor(role domain.AdminRole, perms ...string) *domain.AdminSession {
	return &domain.AdminSession{
		ID:          "sess-1",
		AdminID:     "admin-1",
		UserID:      "user-1",
		Email:       "dispatch@allianceshipping.test",
		Role:        role,
		Permissions: domain.NewPermissions(perms...),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}
