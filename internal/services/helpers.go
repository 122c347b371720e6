package services

import (
	"context"
	"log/slog"

	"github.com/atikur-24/daily-fit-server/internal/events"
)

// publish is best effort: a broker outage must not fail a committed write
func publish(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, eventType events.EventType, data map[string]interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		logger.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}
