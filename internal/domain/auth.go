package domain

import "time"

// AdminSession is the server-held record bound to a verified login.
type AdminSession struct {
	ID          string
	AdminID     string
	UserID      string
	Role        AdminRole
	Email       string
	Permissions Permissions
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// Allows reports whether the session holds permission, or a role that implies every permission.
func (s *AdminSession) Allows(permission string) bool {
	if s == nil {
		return false
	}
	if s.Role == AdminRoleSuperAdmin || s.Role == AdminRoleAdmin {
		return true
	}
	return s.Permissions.Has(permission)
}
