package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alliance-shipping/backoffice/internal/api/dto"
	"github.com/alliance-shipping/backoffice/internal/auth"
	"github.com/alliance-shipping/backoffice/internal/config"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

// AuthHandler exposes admin login, logout and session endpoints.
type AuthHandler struct {
	auth Authenticator
	cfg  config.AuthConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService Authenticator, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{auth: authService, cfg: cfg}
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.AdminLoginResponse{
		Success: true,
		Admin: dto.AdminSummary{
			Email: result.Session.Email,
			Role:  result.Session.Role,
		},
	})
}

// LoginPage handles GET /admin/login, the one admin path that needs no session.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(dto.LoginPageResponse{
		Endpoint: "/api/admin/login",
		Method:   http.MethodPost,
		Fields:   []string{"email", "password"},
	})
}

// Logout handles POST /admin/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), auth.TokenFromContext(c)); err != nil {
		return err
	}
	auth.ExpireSessionCookie(c, h.cfg.CookieName)
	return c.JSON(fiber.Map{"success": true})
}

// Me handles GET /admin/api/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		AdminID:     sess.AdminID,
		Email:       sess.Email,
		Role:        sess.Role,
		Permissions: sess.Permissions.List(),
		ExpiresAt:   sess.ExpiresAt,
	}})
}

// ChangePassword handles POST /admin/api/password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.auth.ChangePassword(c.UserContext(), sess, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
