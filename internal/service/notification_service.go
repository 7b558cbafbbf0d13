package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/alliance-shipping/backoffice/internal/config"
	"github.com/alliance-shipping/backoffice/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventShipmentRegistered, n.handleShipmentRegistered)
	n.dispatcher.Subscribe(events.EventShipmentStatusChanged, n.handleShipmentStatusChanged)
	n.dispatcher.Subscribe(events.EventContactMessageReceived, n.handleContactMessageReceived)
	n.dispatcher.Subscribe(events.EventAdminLoggedIn, n.handleAdminLoggedIn)
}

func (n *NotificationService) handleShipmentRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("ShipmentRegistered", zap.String("tracking_code", event.Subject), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleShipmentStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ShipmentStatusChanged", zap.String("tracking_code", event.Subject), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleContactMessageReceived(ctx context.Context, event events.Event) error {
	n.logger.Info("ContactMessageReceived", zap.String("message_id", event.Subject), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAdminLoggedIn(_ context.Context, event events.Event) error {
	n.logger.Info("AdminLoggedIn", zap.String("admin_id", event.Subject), zap.String("email", event.Actor.Email))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject", event.Subject),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject", event.Subject),
		zap.String("event_type", string(event.Type)))
}
