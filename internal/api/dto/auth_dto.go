package dto

import (
	"time"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

// AdminLoginRequest payload for the admin login endpoint.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLoginResponse is returned on a successful login.
type AdminLoginResponse struct {
	Success bool         `json:"success"`
	Admin   AdminSummary `json:"admin"`
}

// AdminSummary identifies the logged-in admin without any credential material.
type AdminSummary struct {
	Email string           `json:"email"`
	Role  domain.AdminRole `json:"role"`
}

// SessionResponse describes the current session for GET /admin/api/me.
type SessionResponse struct {
	AdminID     string           `json:"admin_id"`
	Email       string           `json:"email"`
	Role        domain.AdminRole `json:"role"`
	Permissions []string         `json:"permissions"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// LoginPageResponse tells a client where and how to submit credentials.
type LoginPageResponse struct {
	Endpoint string   `json:"endpoint"`
	Method   string   `json:"method"`
	Fields   []string `json:"fields"`
}
