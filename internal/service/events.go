package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventType identifies a set lifecycle event on the change feed
type EventType string

// EventType constants
const (
	EventSetCreated     EventType = "set_created"
	EventSetUpdated     EventType = "set_updated"
	EventSetArchived    EventType = "set_archived"
	EventSetRestored    EventType = "set_restored"
	EventSetPurged      EventType = "set_purged"
	EventOptionAdded    EventType = "option_added"
	EventOptionUpdated  EventType = "option_updated"
	EventOptionArchived EventType = "option_archived"
	EventFieldBound     EventType = "field_bound"
)

// Event is one entry on the change feed consumed by websocket clients
type Event struct {
	Type      EventType `json:"type"`
	SetID     uuid.UUID `json:"setId"`
	SetName   string    `json:"setName,omitempty"`
	FieldID   string    `json:"fieldId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventHub fans set lifecycle events out to subscribed websocket sessions.
// Publish never blocks: a subscriber that cannot keep up loses events rather
// than stalling the request path.
type EventHub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	logger      *zap.Logger
}

// subscriberBuffer is the per-subscriber channel capacity
const subscriberBuffer = 16

// NewEventHub creates a new EventHub
func NewEventHub(logger *zap.Logger) *EventHub {
	return &EventHub{
		subscribers: make(map[chan Event]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a new event channel
func (h *EventHub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes an event channel
func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// SubscriberCount returns the number of connected subscribers
func (h *EventHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Publish broadcasts an event to all subscribers without blocking
func (h *EventHub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn("Dropping event for slow subscriber",
				zap.String("type", string(event.Type)),
				zap.String("set_id", event.SetID.String()),
			)
		}
	}
}
