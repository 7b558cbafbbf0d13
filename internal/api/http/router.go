package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/alliance-shipping/backoffice/internal/api/http/handlers"
	"github.com/alliance-shipping/backoffice/internal/auth"
	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Shipments *handlers.ShipmentsHandler
	Contact   *handlers.ContactHandler
	Accounts  *handlers.AccountsHandler
	Dashboard *handlers.DashboardHandler
	Gate      *auth.SessionGate
	Metrics   *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Everything under /admin passes through the
// session gate; only the login page is reachable without a session.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	public := app.Group("/api")
	public.Get("/tracking/:code", cfg.Shipments.Track)
	public.Post("/contact", cfg.Contact.Submit)
	public.Post("/admin/login", cfg.Auth.Login)

	admin := app.Group("/admin", cfg.Gate.Handle)
	admin.Get("/login", cfg.Auth.LoginPage)
	admin.Post("/logout", cfg.Auth.Logout)
	admin.Get("/dashboard", cfg.Dashboard.Show)

	adminAPI := admin.Group("/api")
	adminAPI.Get("/me", cfg.Auth.Me)
	adminAPI.Post("/password", cfg.Auth.ChangePassword)

	canWriteShipments := auth.RequirePermission(domain.PermissionShipmentsWrite)
	adminAPI.Get("/shipments", cfg.Shipments.List)
	adminAPI.Post("/shipments", canWriteShipments, cfg.Shipments.Create)
	adminAPI.Get("/shipments/:code", cfg.Shipments.Get)
	adminAPI.Patch("/shipments/:code/status", canWriteShipments, cfg.Shipments.UpdateStatus)

	accounts := adminAPI.Group("/accounts", auth.RequireRole(domain.AdminRoleSuperAdmin))
	accounts.Get("", cfg.Accounts.List)
	accounts.Post("", cfg.Accounts.Create)
	accounts.Patch("/:id/active", cfg.Accounts.SetActive)

	messages := adminAPI.Group("/messages", auth.RequirePermission(domain.PermissionMessagesRead))
	messages.Get("", cfg.Contact.List)
	messages.Post("/:id/read", cfg.Contact.MarkRead)

	app.Use(NotFound)
}
