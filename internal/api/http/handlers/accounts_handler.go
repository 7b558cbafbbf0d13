package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alliance-shipping/backoffice/internal/api/dto"
	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/service"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

// AccountsHandler manages back-office accounts. Routes are restricted to super admins.
type AccountsHandler struct {
	accounts AccountManager
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts AccountManager) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// Create handles POST /admin/api/accounts.
func (h *AccountsHandler) Create(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	account, err := h.accounts.CreateAdmin(c.UserContext(), sess, service.CreateAdminInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": accountResponse(account)})
}

// List handles GET /admin/api/accounts?role=moderator&active=true.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var filters service.AdminListFilters
	if raw := c.Query("role"); raw != "" {
		role, err := domain.ParseAdminRole(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid role", map[string]any{"role": raw})
		}
		filters.Role = &role
	}
	if c.Query("active") != "" {
		active := parseBoolQuery(c, "active", true)
		filters.Active = &active
	}
	filters.Limit, filters.Offset = parsePage(c)

	accounts, err := h.accounts.ListAdmins(c.UserContext(), sess, filters)
	if err != nil {
		return err
	}
	items := make([]dto.AdminAccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, accountResponse(&accounts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SetActive handles PATCH /admin/api/accounts/:id/active.
func (h *AccountsHandler) SetActive(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil || req.Active == nil {
		return apperrors.NewValidationError("active flag required", nil)
	}
	if err := h.accounts.SetActive(c.UserContext(), sess, c.Params("id"), *req.Active); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func accountResponse(a *domain.AdminAccount) dto.AdminAccountResponse {
	return dto.AdminAccountResponse{
		ID:          a.Admin.ID,
		UserID:      a.User.ID,
		Name:        a.User.Name,
		Email:       a.User.Email,
		Role:        a.Admin.Role,
		Active:      a.Admin.Active,
		Permissions: a.Admin.Permissions.List(),
		LastLoginAt: a.Admin.LastLoginAt,
		CreatedAt:   a.Admin.CreatedAt,
	}
}
