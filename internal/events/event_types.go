package events

import (
	"time"

	"github.com/alliance-shipping/backoffice/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShipmentRegistered     EventType = "shipment_registered"
	EventShipmentStatusChanged  EventType = "shipment_status_changed"
	EventContactMessageReceived EventType = "contact_message_received"
	EventAdminLoggedIn          EventType = "admin_logged_in"
)

// Actor identifies the admin behind an event; nil AdminID means a public visitor.
type Actor struct {
	AdminID *string `json:"admin_id,omitempty"`
	Email   string  `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ShipmentRegisteredPayload payload.
type ShipmentRegisteredPayload struct {
	TrackingCode string              `json:"tracking_code"`
	Origin       string              `json:"origin"`
	Destination  string              `json:"destination"`
	ServiceLevel domain.ServiceLevel `json:"service_level"`
}

// ShipmentStatusChangedPayload payload.
type ShipmentStatusChangedPayload struct {
	TrackingCode string                `json:"tracking_code"`
	OldStatus    domain.ShipmentStatus `json:"old_status"`
	NewStatus    domain.ShipmentStatus `json:"new_status"`
	Location     string                `json:"location,omitempty"`
}

// ContactMessageReceivedPayload payload.
type ContactMessageReceivedPayload struct {
	MessageID   string `json:"message_id"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	BodyPreview string `json:"body_preview"`
}

// AdminLoggedInPayload payload.
type AdminLoggedInPayload struct {
	Role domain.AdminRole `json:"role"`
}
