package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/sat-practice-service/internal/events"
)

// EventConfig holds configuration for question event publishing
type EventConfig struct {
	Enabled       bool
	Publisher     string // kafka or mock
	KafkaBrokers  string
	Topic         string
	ConsumerGroup string
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.Topic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.Topic,
			Logger:       logger,
		})
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}

// CreateConsumer creates a Kafka consumer for the question topic. Consuming
// always needs Kafka, regardless of Enabled.
func (c *EventConfig) CreateConsumer(logger *slog.Logger) (*events.Consumer, error) {
	brokers := c.GetKafkaBrokers()
	if len(brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	return events.NewConsumer(events.ConsumerConfig{
		KafkaBrokers:  brokers,
		TopicName:     c.Topic,
		ConsumerGroup: c.ConsumerGroup,
		Logger:        logger,
	})
}
