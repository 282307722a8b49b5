package pubsub

import (
	"context"
	"fmt"
	"log/slog"

	"fullapp/internal/domain/service"
	"fullapp/internal/errors"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
)

// googlePublisher sends events to an existing Cloud Pub/Sub topic with per-aggregate ordering.
type googlePublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePublisher verifies the topic exists and returns a publisher for it.
func NewGooglePublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "create pubsub client")
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicPath}); err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "get topic %s", topicPath)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	return &googlePublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Publish sends the event and waits for the server acknowledgement.
func (p *googlePublisher) Publish(ctx context.Context, event *service.DomainEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        msg.data,
		Attributes:  msg.attributes,
		OrderingKey: msg.orderingKey,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		// An ordering key is paused after a failure until resumed.
		if msg.orderingKey != "" {
			p.publisher.ResumePublish(msg.orderingKey)
		}

		return errors.Wrapf(err, "publish %s", event.Type)
	}

	p.logger.DebugContext(ctx, "Event published to Pub/Sub",
		slog.String("type", event.Type),
		slog.String("aggregate_id", event.AggregateID),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close flushes pending messages and releases the client.
func (p *googlePublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
