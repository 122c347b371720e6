package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/atikur-24/daily-fit-server/internal/config"
)

const metadataEventType = "event_type"

type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

// NewPublisher publishes to Kafka when brokers are configured and to an in-process channel otherwise
func NewPublisher(cfg config.EventsConfig, logger *slog.Logger) (*WatermillPublisher, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("Kafka brokers not configured, using in-process event channel")
		return NewWatermillPublisher(gochannel.NewGoChannel(gochannel.Config{}, wmLogger), cfg.Topic, logger), nil
	}

	pub, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   cfg.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	logger.Info("Kafka event publisher ready", "brokers", cfg.KafkaBrokers, "topic", cfg.Topic)
	return NewWatermillPublisher(pub, cfg.Topic, logger), nil
}

func NewWatermillPublisher(publisher message.Publisher, topic string, logger *slog.Logger) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

func (p *WatermillPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set(metadataEventType, string(event.Type))
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.logger.Debug("Event published", "event_id", event.ID, "event_type", event.Type)
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}
