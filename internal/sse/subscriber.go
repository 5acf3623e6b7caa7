package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/logger"
)

// StreamedEvents are the bus events forwarded to stream clients
var StreamedEvents = []event.Type{
	event.KeyCreated,
	event.KeyDeleted,
	event.KeyGiven,
	event.KeyDeposited,
	event.KeyWithdrawn,
	event.KeySlotChanged,
	event.PrizeUpdated,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the forwarding handler for every streamed event type
func (s *Subscriber) Subscribe() {
	names := make([]string, 0, len(StreamedEvents))
	for _, t := range StreamedEvents {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", names)
}

// forward rebroadcasts the event payload unchanged; payloads are JSON-tagged domain structs
func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	return nil
}
