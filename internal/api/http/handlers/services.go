package handlers

import (
	"context"

	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/service"
)

// Authenticator is the slice of the auth service the handlers use.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, sess *domain.AdminSession, currentPassword, newPassword string) error
}

// ShipmentManager covers shipment registration, tracking and status updates.
type ShipmentManager interface {
	Register(ctx context.Context, actor *domain.AdminSession, input service.ShipmentCreateInput) (*domain.Shipment, error)
	Lookup(ctx context.Context, code string) (*service.TrackingView, error)
	List(ctx context.Context, filter service.ShipmentListFilter) ([]domain.Shipment, error)
	UpdateStatus(ctx context.Context, actor *domain.AdminSession, code string, next domain.ShipmentStatus, location, note string) (*domain.Shipment, error)
	StatusSummary(ctx context.Context) (map[domain.ShipmentStatus]int64, error)
}

// ContactInbox covers the public contact form and the admin inbox.
type ContactInbox interface {
	Submit(ctx context.Context, input service.ContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context, unreadOnly bool, limit, offset int) ([]domain.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int64, error)
}

// AccountManager covers back-office account administration.
type AccountManager interface {
	CreateAdmin(ctx context.Context, actor *domain.AdminSession, input service.CreateAdminInput) (*domain.AdminAccount, error)
	ListAdmins(ctx context.Context, actor *domain.AdminSession, filters service.AdminListFilters) ([]domain.AdminAccount, error)
	SetActive(ctx context.Context, actor *domain.AdminSession, adminID string, active bool) error
}
