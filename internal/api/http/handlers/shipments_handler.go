package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/alliance-shipping/backoffice/internal/api/dto"
	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/service"
	"github.com/alliance-shipping/backoffice/internal/tracking"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

// ShipmentsHandler serves public tracking and the admin shipment screens.
type ShipmentsHandler struct {
	shipments ShipmentManager
}

// NewShipmentsHandler constructs handler.
func NewShipmentsHandler(shipments ShipmentManager) *ShipmentsHandler {
	return &ShipmentsHandler{shipments: shipments}
}

// Track handles GET /api/tracking/:code. The code may be in display form.
func (h *ShipmentsHandler) Track(c *fiber.Ctx) error {
	view, err := h.shipments.Lookup(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TrackingResponse{
		TrackingCode: view.Shipment.TrackingCode,
		DisplayCode:  view.DisplayCode,
		Status:       view.Shipment.Status,
		ServiceLevel: view.Shipment.ServiceLevel,
		Origin:       view.Shipment.Origin,
		Destination:  view.Shipment.Destination,
		History:      historyResponse(view.History),
	}})
}

// Create handles POST /admin/api/shipments.
func (h *ShipmentsHandler) Create(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	shipment, err := h.shipments.Register(c.UserContext(), sess, service.ShipmentCreateInput{
		SenderName:     req.SenderName,
		SenderPhone:    req.SenderPhone,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		Origin:         req.Origin,
		Destination:    req.Destination,
		WeightLbs:      req.WeightLbs,
		ServiceLevel:   req.ServiceLevel,
		Location:       req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": shipmentResponse(shipment)})
}

// List handles GET /admin/api/shipments?status=IN_TRANSIT,ARRIVED&q=...
func (h *ShipmentsHandler) List(c *fiber.Ctx) error {
	var filter service.ShipmentListFilter
	for _, raw := range splitCSV(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.ShipmentStatus(raw))
	}
	if q := c.Query("q"); q != "" {
		filter.SearchTerm = &q
	}
	filter.Limit, filter.Offset = parsePage(c)

	shipments, err := h.shipments.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		items = append(items, shipmentResponse(&shipments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /admin/api/shipments/:code.
func (h *ShipmentsHandler) Get(c *fiber.Ctx) error {
	view, err := h.shipments.Lookup(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ShipmentDetailResponse{
		ShipmentResponse: shipmentResponse(view.Shipment),
		History:          historyResponse(view.History),
	}})
}

// UpdateStatus handles PATCH /admin/api/shipments/:code/status.
func (h *ShipmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req dto.UpdateShipmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	shipment, err := h.shipments.UpdateStatus(c.UserContext(), sess, c.Params("code"), req.Status, req.Location, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shipmentResponse(shipment)})
}

func shipmentResponse(s *domain.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:             s.ID,
		TrackingCode:   s.TrackingCode,
		DisplayCode:    tracking.Format(s.TrackingCode),
		SenderName:     s.SenderName,
		SenderPhone:    s.SenderPhone,
		RecipientName:  s.RecipientName,
		RecipientPhone: s.RecipientPhone,
		Origin:         s.Origin,
		Destination:    s.Destination,
		WeightLbs:      s.WeightLbs,
		ServiceLevel:   s.ServiceLevel,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func historyResponse(events []domain.ShipmentEvent) []dto.ShipmentEventResponse {
	out := make([]dto.ShipmentEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ShipmentEventResponse{
			Status:    e.Status,
			Location:  e.Location,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
