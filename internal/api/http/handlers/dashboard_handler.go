package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alliance-shipping/backoffice/internal/api/dto"
)

// DashboardHandler serves GET /admin/dashboard.
type DashboardHandler struct {
	shipments ShipmentManager
	inbox     ContactInbox
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(shipments ShipmentManager, inbox ContactInbox) *DashboardHandler {
	return &DashboardHandler{shipments: shipments, inbox: inbox}
}

// Show returns shipment counts per status and the unread message count.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	counts, err := h.shipments.StatusSummary(c.UserContext())
	if err != nil {
		return err
	}
	unread, err := h.inbox.CountUnread(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		Admin:          dto.AdminSummary{Email: sess.Email, Role: sess.Role},
		ShipmentCounts: counts,
		UnreadMessages: unread,
	}})
}
