package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alliance-shipping/backoffice/internal/api/dto"
	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/service"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	inbox ContactInbox
}

// NewContactHandler constructs handler.
func NewContactHandler(inbox ContactInbox) *ContactHandler {
	return &ContactHandler{inbox: inbox}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, err := h.inbox.Submit(c.UserContext(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "id": msg.ID})
}

// List handles GET /admin/api/messages?unread=true.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	msgs, err := h.inbox.List(c.UserContext(), parseBoolQuery(c, "unread", false), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.ContactMessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, contactMessageResponse(&msgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// MarkRead handles POST /admin/api/messages/:id/read.
func (h *ContactHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.inbox.MarkRead(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func contactMessageResponse(m *domain.ContactMessage) dto.ContactMessageResponse {
	return dto.ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Subject:   m.Subject,
		Message:   m.Body,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}
