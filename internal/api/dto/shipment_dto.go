package dto

import (
	"time"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

// CreateShipmentRequest payload.
type CreateShipmentRequest struct {
	SenderName     string              `json:"sender_name"`
	SenderPhone    string              `json:"sender_phone"`
	RecipientName  string              `json:"recipient_name"`
	RecipientPhone string              `json:"recipient_phone"`
	Origin         string              `json:"origin"`
	Destination    string              `json:"destination"`
	WeightLbs      float64             `json:"weight_lbs"`
	ServiceLevel   domain.ServiceLevel `json:"service_level"`
	Location       string              `json:"location"`
}

// UpdateShipmentStatusRequest payload.
type UpdateShipmentStatusRequest struct {
	Status   domain.ShipmentStatus `json:"status"`
	Location string                `json:"location"`
	Note     string                `json:"note"`
}

// ShipmentResponse is the admin view of a shipment.
type ShipmentResponse struct {
	ID             string                `json:"id"`
	TrackingCode   string                `json:"tracking_code"`
	DisplayCode    string                `json:"display_code"`
	SenderName     string                `json:"sender_name"`
	SenderPhone    string                `json:"sender_phone"`
	RecipientName  string                `json:"recipient_name"`
	RecipientPhone string                `json:"recipient_phone"`
	Origin         string                `json:"origin"`
	Destination    string                `json:"destination"`
	WeightLbs      float64               `json:"weight_lbs"`
	ServiceLevel   domain.ServiceLevel   `json:"service_level"`
	Status         domain.ShipmentStatus `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ShipmentEventResponse is a history entry.
type ShipmentEventResponse struct {
	Status    domain.ShipmentStatus `json:"status"`
	Location  string                `json:"location,omitempty"`
	Note      string                `json:"note,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// TrackingResponse is the public tracking view. It omits phone numbers.
type TrackingResponse struct {
	TrackingCode string                  `json:"tracking_code"`
	DisplayCode  string                  `json:"display_code"`
	Status       domain.ShipmentStatus   `json:"status"`
	ServiceLevel domain.ServiceLevel     `json:"service_level"`
	Origin       string                  `json:"origin"`
	Destination  string                  `json:"destination"`
	History      []ShipmentEventResponse `json:"history"`
}

// ShipmentDetailResponse is the admin detail view with history.
type ShipmentDetailResponse struct {
	ShipmentResponse
	History []ShipmentEventResponse `json:"history"`
}
