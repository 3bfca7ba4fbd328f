package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"boliche/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeWagerResolved    EventType = "wager_resolved"
	EventTypeBettorReconciled EventType = "bettor_reconciled"
	EventTypePenaltyPaid      EventType = "penalty_paid"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// WagerResolvedEvent fires when a wager transitions out of the pending
// state.
type WagerResolvedEvent struct {
	WagerID      string
	BettorID     string
	State        models.WagerState
	RealizedGain float64
}

func (e WagerResolvedEvent) Type() EventType {
	return EventTypeWagerResolved
}

// BettorReconciledEvent fires after a bettor's derived totals have been
// recomputed and written back.
type BettorReconciledEvent struct {
	BettorID     string
	TotalWagered float64
	TotalWon     float64
	Balance      float64
}

func (e BettorReconciledEvent) Type() EventType {
	return EventTypeBettorReconciled
}

// PenaltyPaidEvent fires when a bocana is settled with its food item.
type PenaltyPaidEvent struct {
	PenaltyID string
	PlayerID  string
	Food      string
}

func (e PenaltyPaidEvent) Type() EventType {
	return EventTypePenaltyPaid
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
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so a slow or panicking subscriber never blocks the
// operation that emitted the event.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
