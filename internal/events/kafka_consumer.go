package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ganengile/service-matching/internal/kafka"
)

// DeliveryEventConsumer listens to delivery events and triggers matching for
// newly posted requests.
type DeliveryEventConsumer struct {
	consumer *kafka.Consumer
	handler  DeliveryRequestedHandler
	logger   *zap.Logger
}

// DeliveryRequestedHandler reacts to one DeliveryRequestedEvent.
type DeliveryRequestedHandler func(ctx context.Context, evt DeliveryRequestedEvent) error

// NewDeliveryEventConsumer creates a consumer on the delivery events topic.
func NewDeliveryEventConsumer(
	brokers []string,
	groupID string,
	handler DeliveryRequestedHandler,
	logger *zap.Logger,
) *DeliveryEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicDeliveryEvents, logger)
	return &DeliveryEventConsumer{
		consumer: consumer,
		handler:  handler,
		logger:   logger,
	}
}

// Start begins consuming delivery events. This blocks until the context is
// cancelled.
func (c *DeliveryEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *DeliveryEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *DeliveryEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from delivery topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case DeliveryRequested:
		return c.handleDeliveryRequested(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled delivery event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *DeliveryEventConsumer) handleDeliveryRequested(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt DeliveryRequestedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse DeliveryRequestedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing delivery requested event",
		zap.String("request_id", evt.RequestID.String()),
	)

	if err := c.handler(ctx, evt); err != nil {
		c.logger.Error("failed to match delivery request",
			zap.String("request_id", evt.RequestID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
