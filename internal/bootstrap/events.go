package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/CrateBot_Go/internal/event"
	"github.com/osse101/CrateBot_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus and registers the
// subscribers every deployment needs.
func InitializeEventSystem() (*event.MemoryBus, error) {
	bus := event.NewMemoryBus()

	if err := RegisterEventHandlers(bus); err != nil {
		return nil, err
	}

	slog.Info(LogMsgEventSystemInitialized)
	return bus, nil
}

// RegisterEventHandlers sets up all event subscribers.
// This currently is the metrics collector counting key and prize events.
func RegisterEventHandlers(bus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)
	return nil
}
