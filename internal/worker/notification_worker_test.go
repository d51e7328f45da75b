package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/order-service/internal/config"
	"github.com/spec-kit/order-service/internal/events"
	"github.com/spec-kit/order-service/internal/service"
)

func TestStartNotificationWorkerSubscribesHandlers(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher()

	StartNotificationWorker(service.NewNotificationService(dispatcher, logger, config.NotificationConfig{}), logger)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventOrderCreated,
		OrderID:   3,
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("order notification worker subscribed").Len())
	assert.Equal(t, 1, logs.FilterMessage("OrderCreated").Len())
}

func TestStartNotificationWorkerWithoutService(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	StartNotificationWorker(nil, zap.New(core))

	assert.Equal(t, 1, logs.FilterMessage("order notifications disabled").Len())
}
