package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// TestContext wires a mock CrateBot API and a Discord session whose REST calls are captured
type TestContext struct {
	Server    *httptest.Server
	Mux       *http.ServeMux
	APIClient *APIClient
	Session   *discordgo.Session

	mu        sync.Mutex
	responses []discordgo.InteractionResponse
	edits     []discordgo.WebhookEdit
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewAPIClient(server.URL, "test-api-key")
	client.RetryDelay = time.Millisecond

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	tc := &TestContext{
		Server:    server,
		Mux:       mux,
		APIClient: client,
		Session:   session,
	}

	session.Client = &http.Client{Transport: &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			tc.capture(t, req)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("{}")),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Request:    req,
			}, nil
		},
	}}

	return tc
}

func (tc *TestContext) capture(t *testing.T, req *http.Request) {
	if req.Body == nil {
		return
	}
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	tc.mu.Lock()
	defer tc.mu.Unlock()
	switch {
	case strings.HasSuffix(req.URL.Path, "/callback"):
		var resp discordgo.InteractionResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		tc.responses = append(tc.responses, resp)
	case strings.HasSuffix(req.URL.Path, "/messages/@original"):
		var edit discordgo.WebhookEdit
		require.NoError(t, json.Unmarshal(body, &edit))
		tc.edits = append(tc.edits, edit)
	}
}

// LastEdit returns the last deferred-response edit sent to Discord
func (tc *TestContext) LastEdit(t *testing.T) discordgo.WebhookEdit {
	t.Helper()
	tc.mu.Lock()
	defer tc.mu.Unlock()
	require.NotEmpty(t, tc.edits, "no interaction edit was sent")
	return tc.edits[len(tc.edits)-1]
}

// LastResponse returns the last interaction callback sent to Discord
func (tc *TestContext) LastResponse(t *testing.T) discordgo.InteractionResponse {
	t.Helper()
	tc.mu.Lock()
	defer tc.mu.Unlock()
	require.NotEmpty(t, tc.responses, "no interaction response was sent")
	return tc.responses[len(tc.responses)-1]
}

// newCommandInteraction builds a slash command interaction from a guild member
func newCommandInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:     "interaction-1",
			AppID:  "app-1",
			Token:  "token-1",
			Type:   discordgo.InteractionApplicationCommand,
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "42", Username: "steve.builder"},
			},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

func stringOption(name, value string, focused bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionString,
		Value:   value,
		Focused: focused,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
