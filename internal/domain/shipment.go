package domain

import "time"

// ShipmentStatus enumerates parcel lifecycle states.
type ShipmentStatus string

const (
	ShipmentStatusReceived       ShipmentStatus = "RECEIVED"
	ShipmentStatusInTransit      ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusInCustoms      ShipmentStatus = "IN_CUSTOMS"
	ShipmentStatusArrived        ShipmentStatus = "ARRIVED"
	ShipmentStatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	ShipmentStatusDelivered      ShipmentStatus = "DELIVERED"
	ShipmentStatusCancelled      ShipmentStatus = "CANCELLED"
)

// ServiceLevel enumerates the offered shipping speeds.
type ServiceLevel string

const (
	ServiceLevelStandard ServiceLevel = "STANDARD"
	ServiceLevelExpress  ServiceLevel = "EXPRESS"
	ServiceLevelFreight  ServiceLevel = "FREIGHT"
)

// Shipment is a parcel registered at a counter. TrackingCode is immutable once stored.
type Shipment struct {
	ID             string
	TrackingCode   string
	SenderName     string
	SenderPhone    string
	RecipientName  string
	RecipientPhone string
	Origin         string
	Destination    string
	WeightLbs      float64
	ServiceLevel   ServiceLevel
	Status         ShipmentStatus
	CreatedBy      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ShipmentEvent is an immutable history entry.
type ShipmentEvent struct {
	ID         string
	ShipmentID string
	Status     ShipmentStatus
	Location   string
	Note       string
	CreatedBy  *string
	CreatedAt  time.Time
}
