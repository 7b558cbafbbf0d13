package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alliance-shipping/backoffice/internal/auth"
	"github.com/alliance-shipping/backoffice/internal/config"
	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/repository"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

// AdminService manages back-office accounts.
type AdminService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	bcryptCost int
}

// AdminDependencies encapsulates repositories required for account management.
type AdminDependencies struct {
	UserRepo  repository.UserRepository
	AdminRepo repository.AdminRepository
}

// CreateAdminInput describes a new back-office account.
type CreateAdminInput struct {
	Name        string
	Email       string
	Password    string
	Role        domain.AdminRole
	Permissions []string
}

// AdminListFilters define listing parameters.
type AdminListFilters struct {
	Role   *domain.AdminRole
	Active *bool
	Limit  int
	Offset int
}

// NewAdminService constructs the service.
func NewAdminService(cfg config.Config, deps AdminDependencies) *AdminService {
	return &AdminService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

func requireSuperAdmin(actor *domain.AdminSession) error {
	if actor == nil || actor.Role != domain.AdminRoleSuperAdmin {
		return apperrors.NewForbidden("super admin role required")
	}
	return nil
}

// CreateAdmin creates an account on behalf of a super admin.
func (s *AdminService) CreateAdmin(ctx context.Context, actor *domain.AdminSession, input CreateAdminInput) (*domain.AdminAccount, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	return s.createAccount(ctx, input)
}

// Bootstrap creates an account without an acting session. It backs the operator CLI.
func (s *AdminService) Bootstrap(ctx context.Context, input CreateAdminInput) (*domain.AdminAccount, error) {
	return s.createAccount(ctx, input)
}

func (s *AdminService) createAccount(ctx context.Context, input CreateAdminInput) (*domain.AdminAccount, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validateAdminInput(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		user = &domain.User{Name: strings.TrimSpace(input.Name), Email: input.Email}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, apperrors.MapError(err)
		}
	case err != nil:
		return nil, apperrors.MapError(err)
	default:
		if _, err := s.admins.GetByUserID(ctx, user.ID); err == nil {
			return nil, apperrors.NewConflict("admin account already exists", map[string]any{"email": input.Email})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	admin := &domain.Admin{
		UserID:       user.ID,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
		Permissions:  domain.NewPermissions(input.Permissions...),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &domain.AdminAccount{User: *user, Admin: *admin}, nil
}

func validateAdminInput(input CreateAdminInput) error {
	details := map[string]any{}
	if _, err := mail.ParseAddress(input.Email); err != nil || strings.Contains(input.Email, "<") {
		details["email"] = "must be a plain email address"
	}
	if len(input.Password) < minPasswordLength {
		details["password"] = "must be at least 8 characters"
	}
	if !input.Role.Valid() {
		details["role"] = "must be one of super_admin, admin, moderator"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid admin account", details)
	}
	return nil
}

// ListAdmins returns accounts matching filters.
func (s *AdminService) ListAdmins(ctx context.Context, actor *domain.AdminSession, filters AdminListFilters) ([]domain.AdminAccount, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	accounts, err := s.admins.List(ctx, repository.AdminFilter{
		Role:   filters.Role,
		Active: filters.Active,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return accounts, nil
}

// SetActive enables or disables an account. A super admin cannot disable their own account.
func (s *AdminService) SetActive(ctx context.Context, actor *domain.AdminSession, adminID string, active bool) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if !active && actor.AdminID == adminID {
		return apperrors.NewConflict("cannot deactivate your own account", nil)
	}
	if err := s.admins.SetActive(ctx, adminID, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("admin", map[string]any{"id": adminID})
		}
		return apperrors.MapError(err)
	}
	return nil
}
