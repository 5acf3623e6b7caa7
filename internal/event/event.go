package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Key and prize event types
const (
	KeyCreated     Type = domain.EventTypeKeyCreated
	KeyDeleted     Type = domain.EventTypeKeyDeleted
	KeyGiven       Type = domain.EventTypeKeyGiven
	KeyDeposited   Type = domain.EventTypeKeyDeposited
	KeyWithdrawn   Type = domain.EventTypeKeyWithdrawn
	KeySlotChanged Type = domain.EventTypeKeySlotChanged
	PrizeUpdated   Type = domain.EventTypePrizeUpdated
)

// Type-safe event constructors

// NewKeyCreatedEvent creates a key.created event
func NewKeyCreatedEvent(keyName, actorID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    KeyCreated,
		Payload: domain.KeyPayload{
			KeyName:   keyName,
			ActorID:   actorID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewKeyDeletedEvent creates a key.deleted event
func NewKeyDeletedEvent(keyName, actorID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    KeyDeleted,
		Payload: domain.KeyPayload{
			KeyName:   keyName,
			ActorID:   actorID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewKeyTransferEvent creates a key.given, key.deposited or key.withdrawn event.
// source records which surface triggered the transfer ("command" or "prompt").
func NewKeyTransferEvent(eventType Type, keyName, actorID, receiverID string, amount int, physical bool, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: domain.KeyTransferPayload{
			KeyName:    keyName,
			ActorID:    actorID,
			ReceiverID: receiverID,
			Amount:     amount,
			Physical:   physical,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: Metadata{MetadataSource: source},
	}
}

// NewKeySlotChangedEvent creates a key.slot_changed event
func NewKeySlotChangedEvent(keyName string, slot int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    KeySlotChanged,
		Payload: domain.KeySlotPayload{
			KeyName:   keyName,
			Slot:      slot,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewPrizeUpdatedEvent creates a prize.updated event
func NewPrizeUpdatedEvent(crateName string, slot int, field string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PrizeUpdated,
		Payload: domain.PrizeUpdatedPayload{
			CrateName: crateName,
			Slot:      slot,
			Field:     field,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously; their errors are collected and returned together.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
