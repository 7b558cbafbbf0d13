package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alliance-shipping/backoffice/internal/domain"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

// RequireRole ensures the session holds one of the allowed roles.
func RequireRole(allowed ...domain.AdminRole) fiber.Handler {
	allowedSet := make(map[domain.AdminRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		sess, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[sess.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequirePermission ensures the session grants permission.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !sess.Allows(permission) {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}
