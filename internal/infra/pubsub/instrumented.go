package pubsub

import (
	"context"
	"log/slog"
	"time"

	"fullapp/internal/domain/service"
	"fullapp/internal/infra/metrics"
)

// instrumentedPublisher bounds each publish by timeout and records the outcome.
type instrumentedPublisher struct {
	next    service.EventPublisher
	timeout time.Duration
	logger  *slog.Logger
}

func newInstrumentedPublisher(next service.EventPublisher, timeout time.Duration, logger *slog.Logger) *instrumentedPublisher {
	return &instrumentedPublisher{next: next, timeout: timeout, logger: logger}
}

func (p *instrumentedPublisher) Publish(ctx context.Context, event *service.DomainEvent) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	eventType := "unknown"
	if event != nil && event.Type != "" {
		eventType = event.Type
	}

	start := time.Now()
	err := p.next.Publish(ctx, event)
	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(eventType, metrics.ResultError).Inc()
		p.logger.WarnContext(ctx, "Event publish failed",
			slog.String("type", eventType),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err),
		)

		return err
	}
	metrics.EventsPublishedTotal.WithLabelValues(eventType, metrics.ResultSuccess).Inc()

	return nil
}

func (p *instrumentedPublisher) Close() error {
	return p.next.Close()
}
