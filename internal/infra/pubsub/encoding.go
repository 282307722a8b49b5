package pubsub

import (
	"encoding/json"

	"fullapp/internal/domain/service"
	"fullapp/internal/errors"
)

// Attribute keys attached to every message for subscription filters and tracing.
const (
	attrEventType   = "event_type"
	attrAggregateID = "aggregate_id"
	attrRequestID   = "request_id"
)

// encodedEvent is the broker-neutral form of a DomainEvent.
type encodedEvent struct {
	data        []byte
	attributes  map[string]string
	orderingKey string
}

// encodeEvent serializes the event as JSON. Events of one aggregate share an
// ordering key so a subscriber sees product.created before product.deleted.
func encodeEvent(event *service.DomainEvent) (*encodedEvent, error) {
	if event == nil || event.Type == "" {
		return nil, errors.New("event type is required")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s event", event.Type)
	}

	attributes := map[string]string{
		attrEventType:   event.Type,
		attrAggregateID: event.AggregateID,
	}
	if event.RequestID != "" {
		attributes[attrRequestID] = event.RequestID
	}

	return &encodedEvent{
		data:        data,
		attributes:  attributes,
		orderingKey: event.AggregateID,
	}, nil
}
