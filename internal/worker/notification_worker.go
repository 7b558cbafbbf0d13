// Package worker starts background consumers of domain events.
package worker

import (
	"github.com/alliance-shipping/backoffice/internal/service"
)

// StartNotificationWorker subscribes shipment, contact and login notifications.
func StartNotificationWorker(notifications *service.NotificationService) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
}
