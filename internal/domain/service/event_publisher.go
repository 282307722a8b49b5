package service

import (
	"context"
	"time"
)

// Event types published after successful writes.
const (
	EventUserRegistered = "user.registered"
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// DomainEvent is a notification about a committed state change.
type DomainEvent struct {
	RequestID   string         `json:"request_id,omitempty"` // For distributed tracing
	Type        string         `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish delivers the event. Callers treat failures as non-fatal.
	Publish(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
