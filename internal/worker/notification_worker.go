package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/order-service/internal/service"
)

// StartNotificationWorker subscribes order notifications to the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		logger.Warn("order notifications disabled")
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("order notification worker subscribed")
}
