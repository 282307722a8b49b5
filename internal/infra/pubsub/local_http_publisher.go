package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "fullapp/internal/delivery/context"
	"fullapp/internal/domain/service"
	"fullapp/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const localSubscription = "projects/local/subscriptions/fullapp-events"

// localHTTPPublisher posts events to a development endpoint in the shape of a Pub/Sub push delivery.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// PushMessage mirrors the body Pub/Sub sends to push subscriptions.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		OrderingKey string            `json:"orderingKey,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher returns a publisher whose requests give up after timeout.
func NewLocalHTTPPublisher(endpoint string, timeout time.Duration, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Publish posts the event wrapped in a push envelope. Any non-2xx answer is an error.
func (p *localHTTPPublisher) Publish(ctx context.Context, event *service.DomainEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}

	var push PushMessage
	push.Subscription = localSubscription
	push.Message.Data = base64.StdEncoding.EncodeToString(msg.data)
	push.Message.Attributes = msg.attributes
	push.Message.OrderingKey = msg.orderingKey
	push.Message.MessageID = uuid.NewString()
	push.Message.PublishTime = time.Now().UTC().Format(time.RFC3339Nano)

	body, err := json.Marshal(push)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if event.RequestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "push %s", event.Type)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("push endpoint returned status %d", resp.StatusCode)
	}

	p.logger.DebugContext(ctx, "Event pushed to local endpoint",
		slog.String("endpoint", p.endpoint),
		slog.String("type", event.Type),
		slog.String("aggregate_id", event.AggregateID),
	)

	return nil
}

func (p *localHTTPPublisher) Close() error {
	p.httpClient.CloseIdleConnections()

	return nil
}
