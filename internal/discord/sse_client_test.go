package discord

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CrateBot_Go/internal/domain"
	"github.com/osse101/CrateBot_Go/internal/sse"
)

type recordingNotifier struct {
	mu     sync.Mutex
	embeds []*discordgo.MessageEmbed
	err    error
}

func (r *recordingNotifier) SendNotification(embed *discordgo.MessageEmbed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.embeds = append(r.embeds, embed)
	return r.err
}

func (r *recordingNotifier) sent() []*discordgo.MessageEmbed {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*discordgo.MessageEmbed(nil), r.embeds...)
}

func streamServer(t *testing.T, events ...sse.Event) *httptest.Server {
	t.Helper()
	var body strings.Builder
	for _, evt := range append([]sse.Event{{ID: "c", Type: "connected"}}, events...) {
		msg, err := sse.FormatSSEMessage(evt)
		require.NoError(t, err)
		body.Write(msg)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(body.String()))
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSSEClient_DispatchesToNotifier(t *testing.T) {
	srv := streamServer(t,
		sse.Event{ID: "1", Type: "keepalive", Timestamp: 1},
		sse.Event{ID: "2", Type: domain.EventTypeKeyGiven, Timestamp: 1700000000, Payload: domain.KeyTransferPayload{
			KeyName: "vote", ActorID: "a", ReceiverID: "b", Amount: 3, Physical: true,
		}},
		sse.Event{ID: "3", Type: domain.EventTypeKeySlotChanged, Payload: domain.KeySlotPayload{KeyName: "vote", Slot: 4}},
	)

	rec := &recordingNotifier{}
	client := NewSSEClient(srv.URL+"/", "secret", NotifiedEventTypes)
	NewSSENotifier(rec).RegisterHandlers(client)
	client.Start(context.Background())
	defer client.Stop()

	require.Eventually(t, func() bool { return len(rec.sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, client.IsConnected())

	embed := rec.sent()[0]
	assert.Equal(t, "🔑 Keys given out", embed.Title)
	assert.Contains(t, embed.Description, "**3 × vote**")
	assert.Equal(t, "physical", embed.Fields[2].Value)
	assert.Equal(t, FooterText, embed.Footer.Text)
	assert.Equal(t, "2023-11-14T22:13:20Z", embed.Timestamp)
}

func TestSSEClient_SendsAuthAndFilter(t *testing.T) {
	got := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case got <- r:
		default:
		}
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewSSEClient(srv.URL, "secret", []string{domain.EventTypeKeyCreated, domain.EventTypeKeyDeleted})
	err := client.connect(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	r := <-got
	assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
	assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
	assert.Equal(t, "key.created,key.deleted", r.URL.Query().Get("types"))
	assert.False(t, client.IsConnected())
}

func TestSSEClient_ReadEventsReportsClosedStream(t *testing.T) {
	client := NewSSEClient("http://unused", "", nil)
	var got []SSEEvent
	client.OnEvent(domain.EventTypeKeyCreated, func(e SSEEvent) error {
		got = append(got, e)
		return nil
	})

	stream := "id: 9\nevent: key.created\ndata: {\"payload\":{\"key_name\":\"vote\"}}\n\n" +
		"event: key.created\ndata: not-json\n\n"
	err := client.readEvents(context.Background(), strings.NewReader(stream))

	assert.ErrorIs(t, err, ErrStreamClosed)
	require.Len(t, got, 1)
	assert.Equal(t, "9", got[0].ID)
	assert.Equal(t, domain.EventTypeKeyCreated, got[0].Type)
	assert.JSONEq(t, `{"key_name":"vote"}`, string(got[0].Payload))
}

func TestSSEClient_StopIsIdempotent(t *testing.T) {
	client := NewSSEClient("http://127.0.0.1:1", "", nil)
	client.Start(context.Background())
	client.Stop()
	client.Stop()
	assert.False(t, client.IsConnected())
}

func TestSSENotifier_Embeds(t *testing.T) {
	rec := &recordingNotifier{}
	n := NewSSENotifier(rec)

	require.NoError(t, n.handleKeyLifecycle(SSEEvent{Type: domain.EventTypeKeyDeleted, Payload: []byte(`{"key_name":"vote"}`)}))
	require.NoError(t, n.handlePrizeUpdated(SSEEvent{Type: domain.EventTypePrizeUpdated, Payload: []byte(`{"crate_name":"rare","slot":2,"field":"chance"}`)}))
	// malformed payloads are skipped
	require.NoError(t, n.handleKeyTransfer(SSEEvent{Type: domain.EventTypeKeyWithdrawn, Payload: []byte(`[`)}))

	sent := rec.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "🗑️ Key type removed", sent[0].Title)
	assert.Equal(t, "Slot 2 in crate **rare** had its chance changed.", sent[1].Description)
	assert.Empty(t, sent[1].Timestamp)
}

func TestSSENotifier_PropagatesSendError(t *testing.T) {
	rec := &recordingNotifier{err: ErrNoNotificationChannel}
	n := NewSSENotifier(rec)

	err := n.handleKeyTransfer(SSEEvent{Type: domain.EventTypeKeyDeposited, Payload: []byte(`{"key_name":"vote","amount":1}`)})
	assert.ErrorIs(t, err, ErrNoNotificationChannel)
}
