package dto

import (
	"time"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

// CreateAdminRequest payload.
type CreateAdminRequest struct {
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Password    string           `json:"password"`
	Role        domain.AdminRole `json:"role"`
	Permissions []string         `json:"permissions"`
}

// SetActiveRequest payload.
type SetActiveRequest struct {
	Active *bool `json:"active"`
}

// AdminAccountResponse is an account row; it never carries the password hash.
type AdminAccountResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Role        domain.AdminRole `json:"role"`
	Active      bool             `json:"active"`
	Permissions []string         `json:"permissions"`
	LastLoginAt *time.Time       `json:"last_login_at"`
	CreatedAt   time.Time        `json:"created_at"`
}

// DashboardResponse summarizes the back office.
type DashboardResponse struct {
	Admin          AdminSummary                    `json:"admin"`
	ShipmentCounts map[domain.ShipmentStatus]int64 `json:"shipment_counts"`
	UnreadMessages int64                           `json:"unread_messages"`
}
