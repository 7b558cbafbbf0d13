package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/alliance-shipping/backoffice/internal/config"
	"github.com/alliance-shipping/backoffice/internal/domain"
	"github.com/alliance-shipping/backoffice/internal/events"
	"github.com/alliance-shipping/backoffice/internal/observability"
	"github.com/alliance-shipping/backoffice/internal/repository"
	"github.com/alliance-shipping/backoffice/internal/tracking"
	apperrors "github.com/alliance-shipping/backoffice/pkg/util/errorutil"
)

// ShipmentService coordinates shipment registration, tracking and status updates.
type ShipmentService struct {
	shipments   repository.ShipmentRepository
	history     repository.ShipmentEventRepository
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	maxAttempts int
	generate    func() string
}

// ShipmentDependencies bundles collaborators for the shipment service.
type ShipmentDependencies struct {
	ShipmentRepo repository.ShipmentRepository
	EventRepo    repository.ShipmentEventRepository
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// ShipmentCreateInput describes a parcel dropped off at a counter.
type ShipmentCreateInput struct {
	SenderName     string
	SenderPhone    string
	RecipientName  string
	RecipientPhone string
	Origin         string
	Destination    string
	WeightLbs      float64
	ServiceLevel   domain.ServiceLevel
	Location       string
}

// ShipmentListFilter describes admin listing filters.
type ShipmentListFilter struct {
	Statuses   []domain.ShipmentStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// TrackingView is what a tracking lookup returns.
type TrackingView struct {
	Shipment    *domain.Shipment
	DisplayCode string
	History     []domain.ShipmentEvent
}

// NewShipmentService constructs the service.
func NewShipmentService(cfg config.Config, deps ShipmentDependencies) *ShipmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := cfg.Tracking.MaxAttempts
	if attempts <= 0 {
		attempts = 5
	}
	return &ShipmentService{
		shipments:   deps.ShipmentRepo,
		history:     deps.EventRepo,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      logger,
		maxAttempts: attempts,
		generate:    tracking.Generate,
	}
}

var allowedShipmentTransitions = map[domain.ShipmentStatus][]domain.ShipmentStatus{
	domain.ShipmentStatusReceived:       {domain.ShipmentStatusInTransit, domain.ShipmentStatusCancelled},
	domain.ShipmentStatusInTransit:      {domain.ShipmentStatusInCustoms, domain.ShipmentStatusArrived},
	domain.ShipmentStatusInCustoms:      {domain.ShipmentStatusArrived},
	domain.ShipmentStatusArrived:        {domain.ShipmentStatusOutForDelivery, domain.ShipmentStatusDelivered},
	domain.ShipmentStatusOutForDelivery: {domain.ShipmentStatusDelivered, domain.ShipmentStatusArrived},
	domain.ShipmentStatusDelivered:      {},
	domain.ShipmentStatusCancelled:      {},
}

func isValidShipmentTransition(current, next domain.ShipmentStatus) bool {
	for _, candidate := range allowedShipmentTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsKnownShipmentStatus reports whether status is part of the lifecycle.
func IsKnownShipmentStatus(status domain.ShipmentStatus) bool {
	_, ok := allowedShipmentTransitions[status]
	return ok
}

// Register stores a new shipment under a freshly generated tracking code,
// regenerating the code when it collides with an existing one.
func (s *ShipmentService) Register(ctx context.Context, actor *domain.AdminSession, input ShipmentCreateInput) (*domain.Shipment, error) {
	if err := requireShipmentWriter(actor); err != nil {
		return nil, err
	}
	if err := validateShipmentInput(&input); err != nil {
		return nil, err
	}

	actorID := actor.AdminID
	shipment := &domain.Shipment{
		SenderName:     input.SenderName,
		SenderPhone:    input.SenderPhone,
		RecipientName:  input.RecipientName,
		RecipientPhone: input.RecipientPhone,
		Origin:         input.Origin,
		Destination:    input.Destination,
		WeightLbs:      input.WeightLbs,
		ServiceLevel:   input.ServiceLevel,
		Status:         domain.ShipmentStatusReceived,
		CreatedBy:      &actorID,
	}

	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		shipment.TrackingCode = s.generate()
		err = s.shipments.Create(ctx, shipment)
		if !errors.Is(err, repository.ErrDuplicateTrackingCode) {
			break
		}
		s.metrics.RecordTrackingCollision()
		s.logger.Warn("tracking code collision", zap.String("tracking_code", shipment.TrackingCode), zap.Int("attempt", attempt))
	}
	if errors.Is(err, repository.ErrDuplicateTrackingCode) {
		return nil, apperrors.NewConflict("could not allocate a unique tracking code", map[string]any{"attempts": s.maxAttempts})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	location := input.Location
	if location == "" {
		location = input.Origin
	}
	if err := s.recordEvent(ctx, shipment.ID, domain.ShipmentStatusReceived, location, "", &actorID); err != nil {
		s.logger.Warn("record shipment event", zap.String("shipment_id", shipment.ID), zap.Error(err))
	}

	s.metrics.RecordShipmentRegistered()
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventShipmentRegistered,
		Subject: shipment.TrackingCode,
		Actor:   adminActor(actor),
		Payload: events.ShipmentRegisteredPayload{
			TrackingCode: shipment.TrackingCode,
			Origin:       shipment.Origin,
			Destination:  shipment.Destination,
			ServiceLevel: shipment.ServiceLevel,
		},
	})
	return shipment, nil
}

func requireShipmentWriter(actor *domain.AdminSession) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !actor.Allows(domain.PermissionShipmentsWrite) {
		return apperrors.NewForbidden("insufficient permissions")
	}
	return nil
}

func validateShipmentInput(input *ShipmentCreateInput) error {
	input.SenderName = strings.TrimSpace(input.SenderName)
	input.RecipientName = strings.TrimSpace(input.RecipientName)
	input.Origin = strings.TrimSpace(input.Origin)
	input.Destination = strings.TrimSpace(input.Destination)
	if input.ServiceLevel == "" {
		input.ServiceLevel = domain.ServiceLevelStandard
	}

	details := map[string]any{}
	if input.SenderName == "" {
		details["sender_name"] = "required"
	}
	if input.RecipientName == "" {
		details["recipient_name"] = "required"
	}
	if input.Origin == "" {
		details["origin"] = "required"
	}
	if input.Destination == "" {
		details["destination"] = "required"
	}
	if input.WeightLbs <= 0 {
		details["weight_lbs"] = "must be positive"
	}
	switch input.ServiceLevel {
	case domain.ServiceLevelStandard, domain.ServiceLevelExpress, domain.ServiceLevelFreight:
	default:
		details["service_level"] = "must be STANDARD, EXPRESS or FREIGHT"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid shipment", details)
	}
	return nil
}

// Lookup resolves a customer-entered tracking code. Display-form input is accepted.
func (s *ShipmentService) Lookup(ctx context.Context, input string) (*TrackingView, error) {
	code := tracking.Normalize(input)
	if !tracking.Validate(code) {
		return nil, apperrors.NewValidationError("invalid tracking code", map[string]any{"format": "AS-0000000000"})
	}

	shipment, err := s.shipments.GetByTrackingCode(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("shipment", map[string]any{"tracking_code": code})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	history, err := s.history.ListByShipment(ctx, shipment.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TrackingView{
		Shipment:    shipment,
		DisplayCode: tracking.Format(shipment.TrackingCode),
		History:     history,
	}, nil
}

// List returns shipments for the admin screens.
func (s *ShipmentService) List(ctx context.Context, filter ShipmentListFilter) ([]domain.Shipment, error) {
	for _, status := range filter.Statuses {
		if !IsKnownShipmentStatus(status) {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
		}
	}
	shipments, err := s.shipments.List(ctx, repository.ShipmentFilter{
		Statuses:   filter.Statuses,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return shipments, nil
}

// UpdateStatus moves a shipment along its lifecycle and records the change.
func (s *ShipmentService) UpdateStatus(ctx context.Context, actor *domain.AdminSession, code string, next domain.ShipmentStatus, location, note string) (*domain.Shipment, error) {
	if err := requireShipmentWriter(actor); err != nil {
		return nil, err
	}
	if !IsKnownShipmentStatus(next) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": next})
	}

	shipment, err := s.shipments.GetByTrackingCode(ctx, tracking.Normalize(code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("shipment", map[string]any{"tracking_code": code})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	previous := shipment.Status
	if !isValidShipmentTransition(previous, next) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": previous,
			"to":   next,
		})
	}

	if err := s.shipments.UpdateStatus(ctx, shipment.ID, next); err != nil {
		return nil, apperrors.MapError(err)
	}
	shipment.Status = next

	actorID := actor.AdminID
	if err := s.recordEvent(ctx, shipment.ID, next, strings.TrimSpace(location), strings.TrimSpace(note), &actorID); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventShipmentStatusChanged,
		Subject: shipment.TrackingCode,
		Actor:   adminActor(actor),
		Payload: events.ShipmentStatusChangedPayload{
			TrackingCode: shipment.TrackingCode,
			OldStatus:    previous,
			NewStatus:    next,
			Location:     location,
		},
	})
	return shipment, nil
}

// StatusSummary counts shipments per status, including zero counts.
func (s *ShipmentService) StatusSummary(ctx context.Context) (map[domain.ShipmentStatus]int64, error) {
	counts, err := s.shipments.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summary := make(map[domain.ShipmentStatus]int64, len(allowedShipmentTransitions))
	for status := range allowedShipmentTransitions {
		summary[status] = counts[status]
	}
	return summary, nil
}

func (s *ShipmentService) recordEvent(ctx context.Context, shipmentID string, status domain.ShipmentStatus, location, note string, actorID *string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Create(ctx, &domain.ShipmentEvent{
		ShipmentID: shipmentID,
		Status:     status,
		Location:   location,
		Note:       note,
		CreatedBy:  actorID,
	})
}
