package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HandlerFunc processes one decoded event. Returning an error nacks the
// message so it is redelivered.
type HandlerFunc func(ctx context.Context, event *QuestionEvent) error

// ConsumerConfig holds configuration for the event consumer
type ConsumerConfig struct {
	KafkaBrokers  []string
	TopicName     string
	ConsumerGroup string
	Logger        *slog.Logger
}

// Consumer reads question events from Kafka
type Consumer struct {
	subscriber message.Subscriber
	logger     *slog.Logger
	topicName  string
}

func NewConsumer(config ConsumerConfig) (*Consumer, error) {
	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:       config.KafkaBrokers,
		Unmarshaler:   keyedMarshaler(),
		ConsumerGroup: config.ConsumerGroup,
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka subscriber: %w", err)
	}

	return newConsumer(subscriber, config.TopicName, config.Logger), nil
}

func newConsumer(subscriber message.Subscriber, topic string, logger *slog.Logger) *Consumer {
	return &Consumer{subscriber: subscriber, logger: logger, topicName: topic}
}

// Run delivers events to handle until ctx is done. Undecodable messages are
// logged and acked so they do not block the partition.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topicName)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.topicName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.process(ctx, msg, handle)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg *message.Message, handle HandlerFunc) {
	event, err := fromMessage(msg)
	if err != nil {
		c.logger.Warn("Skipping undecodable question event", "message_id", msg.UUID, "error", err)
		msg.Ack()
		return
	}

	if err := handle(ctx, event); err != nil {
		c.logger.Error("Question event handler failed",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		msg.Nack()
		return
	}
	msg.Ack()
}

func (c *Consumer) Close() error {
	return c.subscriber.Close()
}
