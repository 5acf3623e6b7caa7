package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/event"
)

// readEvent reads lines until a blank line and returns the event and data fields
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var eventType, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSuffix(line, "\n")
		switch {
		case line == "":
			return eventType, data
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestHandler_StreamsBusEvents(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	srv := httptest.NewServer(Handler(hub))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types=key.given", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	eventType, _ := readEvent(t, reader)
	assert.Equal(t, EventTypeConnected, eventType)
	waitForClients(t, hub, 1)

	require.NoError(t, bus.Publish(context.Background(), event.NewKeyCreatedEvent("vote", "admin")))
	require.NoError(t, bus.Publish(context.Background(),
		event.NewKeyTransferEvent(event.KeyGiven, "vote", "admin", "steve", 3, false, event.SourceCommand)))

	eventType, data := readEvent(t, reader)
	assert.Equal(t, string(event.KeyGiven), eventType)

	var got struct {
		Payload domain.KeyTransferPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	assert.Equal(t, "vote", got.Payload.KeyName)
	assert.Equal(t, 3, got.Payload.Amount)
}

func TestHandler_ClientDisconnectUnregisters(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	_, _ = readEvent(t, bufio.NewReader(resp.Body))
	waitForClients(t, hub, 1)

	cancel()
	resp.Body.Close()
	waitForClients(t, hub, 0)
}
