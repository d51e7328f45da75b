package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/order-service/internal/config"
	"github.com/spec-kit/order-service/internal/events"
)

// NotificationService turns order events into owner notifications.
// Delivery is log-only; the configured targets are recorded with each entry.
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
	n.dispatcher.Subscribe(events.EventOrderCreated, n.handleOrderCreated)
	n.dispatcher.Subscribe(events.EventOrderUpdated, n.handleOrderChanged)
	n.dispatcher.Subscribe(events.EventOrderDeleted, n.handleOrderChanged)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
}

func (n *NotificationService) handleOrderCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderCreated", zap.Int64("order_id", event.OrderID), zap.Any("payload", event.Payload))
	n.notifyEmail(ctx, event)
	n.notifyWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleOrderChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderChanged",
		zap.String("event_type", string(event.Type)),
		zap.Int64("order_id", event.OrderID),
		zap.String("actor", event.Actor.Username))
	n.notifyWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderStatusChanged", zap.Int64("order_id", event.OrderID), zap.Any("payload", event.Payload))
	n.notifyEmail(ctx, event)
	n.notifyWebhook(ctx, event)
	return nil
}

func (n *NotificationService) notifyEmail(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("order_id", event.OrderID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) notifyWebhook(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("order_id", event.OrderID),
		zap.String("event_type", string(event.Type)))
}
