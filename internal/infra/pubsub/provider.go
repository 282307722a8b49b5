// Package pubsub publishes domain events after successful writes.
package pubsub

import (
	"context"
	"log/slog"

	"fullapp/config"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/domain/lifecycle"
	"fullapp/internal/domain/service"

	"go.uber.org/fx"
)

// Supported values of pubsub.provider.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// noopPublisher is used when no provider is configured.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) Publish(ctx context.Context, event *service.DomainEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping event",
		slog.String("type", event.Type),
		slog.String("aggregate_id", event.AggregateID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher builds the publisher selected by pubsub.provider.
// A missing provider yields a no-op publisher; an incomplete one fails startup.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("PubSub not configured, using no-op publisher")

		return &noopPublisher{logger: logger}, nil
	}

	if err := validatePubSubConfig(cfg); err != nil {
		return nil, err
	}

	var backend service.EventPublisher
	switch cfg.Provider {
	case ProviderLocal:
		logger.Info("Using local HTTP publisher", slog.String("endpoint", cfg.LocalEndpoint))
		backend = NewLocalHTTPPublisher(cfg.LocalEndpoint, cfg.PublishTimeout, logger)

	case ProviderGoogle:
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		var err error
		backend, err = NewGooglePublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}
	}

	publisher := newInstrumentedPublisher(backend, cfg.PublishTimeout, logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("Closing event publisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

func validatePubSubConfig(cfg *config.PubSubConfig) error {
	switch cfg.Provider {
	case ProviderLocal:
		if cfg.LocalEndpoint == "" {
			return domainerrors.ErrConfiguration.WrapMessage("pubsub.localEndpoint is required for the local provider")
		}
	case ProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return domainerrors.ErrConfiguration.WrapMessage("pubsub.projectId and pubsub.topicId are required for the google provider")
		}
	default:
		return domainerrors.ErrConfiguration.WrapMessage("unknown pubsub provider: " + cfg.Provider)
	}

	return nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
