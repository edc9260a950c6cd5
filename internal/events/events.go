// Package events publishes catalog item change notifications.
package events

import (
	"context"
	"time"

	"catalog-service/internal/model"
)

// Event types, also used as AMQP routing keys.
const (
	TypeItemCreated = "item.created"
	TypeItemUpdated = "item.updated"
	TypeItemDeleted = "item.deleted"
)

// Event describes a change to a catalog item. Item is nil for deletions.
type Event struct {
	Type       string      `json:"type"`
	ItemID     string      `json:"itemId"`
	Item       *model.Item `json:"item,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType, itemID string, item *model.Item) Event {
	return Event{
		Type:       eventType,
		ItemID:     itemID,
		Item:       item,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to interested consumers.
type Publisher interface {
	// Publish sends the event. Delivery is best effort.
	Publish(ctx context.Context, event Event) error

	// Close releases resources held by the publisher.
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that discards every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

func (nopPublisher) Close() error { return nil }
