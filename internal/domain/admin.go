package domain

import (
	"fmt"
	"sort"
	"time"
)

// AdminRole enumerates back-office roles.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleModerator  AdminRole = "moderator"
)

// Valid reports whether r is one of the known roles.
func (r AdminRole) Valid() bool {
	switch r {
	case AdminRoleSuperAdmin, AdminRoleAdmin, AdminRoleModerator:
		return true
	}
	return false
}

// ParseAdminRole converts a raw string into a role.
func ParseAdminRole(raw string) (AdminRole, error) {
	role := AdminRole(raw)
	if !role.Valid() {
		return "", fmt.Errorf("unknown admin role %q", raw)
	}
	return role, nil
}

// Well-known permissions checked by the back-office.
const (
	PermissionShipmentsWrite = "shipments:write"
	PermissionMessagesRead   = "messages:read"
)

// Permissions is an open set of permission names.
type Permissions map[string]struct{}

// NewPermissions builds a set from names, skipping blanks.
func NewPermissions(names ...string) Permissions {
	set := make(Permissions, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Has reports membership. A nil set holds nothing.
func (p Permissions) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// List returns the names in sorted order, never nil.
func (p Permissions) List() []string {
	out := make([]string, 0, len(p))
	for name := range p {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Admin is the privilege record that lets a user into the back-office.
type Admin struct {
	ID           string
	UserID       string
	PasswordHash string
	Role         AdminRole
	Active       bool
	Permissions  Permissions
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLogin holds when a session may be issued for the record.
func (a *Admin) CanLogin() bool {
	return a != nil && a.Active && a.PasswordHash != ""
}

// AdminAccount joins a user identity with its privilege record.
type AdminAccount struct {
	User  User
	Admin Admin
}
