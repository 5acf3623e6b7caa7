package fakes

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CrateBot_Go/internal/event"
)

// MockBus is a testify mock of event.Bus
type MockBus struct {
	mock.Mock
}

func (m *MockBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

// OfType matches events of the given type
func OfType(t event.Type) interface{} {
	return mock.MatchedBy(func(evt event.Event) bool { return evt.Type == t })
}
