package events

import (
	"context"
	"sync"

	"ticketbot/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeFeaturesChanged     EventType = "features_changed"
	EventTypeAdminRosterChanged  EventType = "admin_roster_changed"
	EventTypeAutoResponseChanged EventType = "auto_response_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// FeaturesChangedEvent is published after a guild's enabled feature set
// has been persisted. The catalog synchronizer consumes it to republish
// the guild's command set.
type FeaturesChangedEvent struct {
	GuildID int64
	Enabled models.FeatureSet
}

func (e FeaturesChangedEvent) Type() EventType {
	return EventTypeFeaturesChanged
}

// AdminRosterChangedEvent represents a grant or revoke on the global
// admin roster
type AdminRosterChangedEvent struct {
	UserID  int64
	ActorID int64
	Granted bool
	Level   int
}

func (e AdminRosterChangedEvent) Type() EventType {
	return EventTypeAdminRosterChanged
}

// AutoResponseChangedEvent represents a create or delete of a guild
// auto-response
type AutoResponseChangedEvent struct {
	GuildID int64
	Trigger string
	Removed bool
}

func (e AutoResponseChangedEvent) Type() EventType {
	return EventTypeAutoResponseChanged
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the caller
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events until the owning database transaction
// commits, then flushes them to the underlying bus. Events published
// inside a rolled-back transaction are discarded.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful commit.
// Emission uses a background context so event handling outlives the
// transaction's context.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to main event bus")

	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
