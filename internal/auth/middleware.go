package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/session"
)

const (
	sessionLocalsKey = "admin_session"
	tokenLocalsKey   = "admin_session_token"
)

// SessionResolver resolves a cookie token to a live session.
type SessionResolver interface {
	Lookup(ctx context.Context, token string) (*domain.AdminSession, error)
}

// SessionGate protects the admin area. Every path except the login page needs a session.
type SessionGate struct {
	sessions   SessionResolver
	cookieName string
	loginPath  string
	logger     *zap.Logger
}

// NewSessionGate constructs the gate.
func NewSessionGate(sessions SessionResolver, cookieName, loginPath string, logger *zap.Logger) *SessionGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionGate{sessions: sessions, cookieName: cookieName, loginPath: loginPath, logger: logger}
}

// LoginPath returns where unauthenticated requests are sent.
func (g *SessionGate) LoginPath() string {
	return g.loginPath
}

// Handle lets the login page through, passes requests carrying a live session and
// redirects everything else to the login page.
func (g *SessionGate) Handle(c *fiber.Ctx) error {
	if c.Path() == g.loginPath {
		return c.Next()
	}

	token := c.Cookies(g.cookieName)
	sess, err := g.sessions.Lookup(c.UserContext(), token)
	if err != nil || sess == nil {
		if err != nil && !errors.Is(err, session.ErrInvalid) {
			g.logger.Warn("session lookup failed", zap.String("path", c.Path()), zap.Error(err))
		}
		if token != "" {
			ExpireSessionCookie(c, g.cookieName)
		}
		return c.Redirect(g.loginPath, fiber.StatusFound)
	}

	c.Locals(sessionLocalsKey, sess)
	c.Locals(tokenLocalsKey, token)
	return c.Next()
}

// ExpireSessionCookie tells the client to drop the session cookie. The path must
// match the one used at login or browsers keep the original.
func ExpireSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionFromContext retrieves the session stored by the gate.
func SessionFromContext(c *fiber.Ctx) (*domain.AdminSession, bool) {
	val := c.Locals(sessionLocalsKey)
	if val == nil {
		return nil, false
	}
	sess, ok := val.(*domain.AdminSession)
	return sess, ok
}

// TokenFromContext returns the raw session token accepted by the gate.
func TokenFromContext(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenLocalsKey).(string)
	return token
}
