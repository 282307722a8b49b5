// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "fullapp/internal/delivery/context"
	"fullapp/internal/domain/service"
)

// publishEvent sends a committed change to the event publisher.
// Failures are logged and swallowed: the write has already succeeded.
func publishEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, eventType, aggregateID string, payload map[string]any) {
	if publisher == nil {
		return
	}

	event := &service.DomainEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish domain event",
			slog.String("type", eventType),
			slog.String("aggregate_id", aggregateID),
			slog.Any("error", err),
		)
	}
}
