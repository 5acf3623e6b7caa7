package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all key and prize events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.KeyCreated,
		event.KeyDeleted,
		event.KeyGiven,
		event.KeyDeposited,
		event.KeyWithdrawn,
		event.KeySlotChanged,
		event.PrizeUpdated,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.KeyCreated:
		KeysCreated.Inc()

	case event.KeyDeleted:
		KeysDeleted.Inc()

	case event.KeyGiven, event.KeyDeposited, event.KeyWithdrawn:
		payload, err := event.DecodePayload[domain.KeyTransferPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		KeysTransferred.WithLabelValues(string(evt.Type), payload.KeyName, strconv.FormatBool(payload.Physical)).
			Add(float64(payload.Amount))

	case event.KeySlotChanged:
		KeySlotChanges.Inc()

	case event.PrizeUpdated:
		payload, err := event.DecodePayload[domain.PrizeUpdatedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		PrizeUpdates.WithLabelValues(payload.Field).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
