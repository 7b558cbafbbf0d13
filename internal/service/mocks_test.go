package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if user.ID == "" {
		user.ID = "user-new"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	if admin.ID == "" {
		admin.ID = "admin-new"
	}
	return args.Error(0)
}

func (m *MockAdminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*domain.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminRepository) GetByUserID(ctx context.Context, userID string) (*domain.Admin, error) {
	args := m.Called(ctx, userID)
	if a := args.Get(0); a != nil {
		return a.(*domain.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminRepository) List(ctx context.Context, filter repository.AdminFilter) ([]domain.AdminAccount, error) {
	args := m.Called(ctx, filter)
	if a := args.Get(0); a != nil {
		return a.([]domain.AdminAccount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminRepository) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockAdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockAdminRepository) TouchLastLogin(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockSessionIssuer struct {
	mock.Mock
}

func (m *MockSessionIssuer) Issue(ctx context.Context, s *domain.AdminSession) (string, time.Time, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockSessionIssuer) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	args := m.Called(ctx, shipment)
	if args.Error(0) == nil && shipment.ID == "" {
		shipment.ID = "shipment-new"
	}
	return args.Error(0)
}

func (m *MockShipmentRepository) GetByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error) {
	args := m.Called(ctx, code)
	if s := args.Get(0); s != nil {
		return s.(*domain.Shipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipmentRepository) UpdateStatus(ctx context.Context, id string, status domain.ShipmentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockShipmentRepository) List(ctx context.Context, filter repository.ShipmentFilter) ([]domain.Shipment, error) {
	args := m.Called(ctx, filter)
	if s := args.Get(0); s != nil {
		return s.([]domain.Shipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipmentRepository) CountByStatus(ctx context.Context) (map[domain.ShipmentStatus]int64, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.(map[domain.ShipmentStatus]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockShipmentEventRepository struct {
	mock.Mock
}

func (m *MockShipmentEventRepository) Create(ctx context.Context, event *domain.ShipmentEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockShipmentEventRepository) ListByShipment(ctx context.Context, shipmentID string) ([]domain.ShipmentEvent, error) {
	args := m.Called(ctx, shipmentID)
	if e := args.Get(0); e != nil {
		return e.([]domain.ShipmentEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockContactMessageRepository struct {
	mock.Mock
}

func (m *MockContactMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil {
		msg.ID = "msg-1"
	}
	return args.Error(0)
}

func (m *MockContactMessageRepository) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.ContactMessage, error) {
	args := m.Called(ctx, unreadOnly, limit, offset)
	if l := args.Get(0); l != nil {
		return l.([]domain.ContactMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockContactMessageRepository) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContactMessageRepository) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
