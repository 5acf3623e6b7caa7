package discord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// Client defaults
const (
	DefaultClientTimeout = 10 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = 500 * time.Millisecond

	apiPrefix = "/api/v1"
)

// ErrNoNotificationChannel is returned when announcements have nowhere to go
var ErrNoNotificationChannel = errors.New("notification channel not configured")

// APIError is a non-2xx response from the CrateBot API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s (status %d)", e.Message, e.Status)
}

// Reply mirrors the API's reply envelope
type Reply struct {
	Messages  []domain.Message `json:"messages"`
	Cancel    bool             `json:"cancel"`
	CloseMenu bool             `json:"close_menu"`
	Consumed  *bool            `json:"consumed,omitempty"`
}

// APIClient handles communication with the CrateBot API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client:  &http.Client{
			Timeout: DefaultClientTimeout,
		},
		APIKey:     apiKey,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// doRequest performs an HTTP request, retrying transport failures and 5xx responses
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = data
	}

	target := c.BaseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := c.RetryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// call performs a request and decodes a 200 response into out
func (c *APIClient) call(method, path string, body, out interface{}) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Join marks the player online, creating an unregistered player on first contact
func (c *APIClient) Join(name string) (*domain.Player, error) {
	req := map[string]interface{}{
		"name":   name,
		"online": true,
	}
	var p domain.Player
	if err := c.call(http.MethodPost, apiPrefix+"/players/presence", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// RunCommand runs a /keys command line as the player
func (c *APIClient) RunCommand(player, line string) (*Reply, error) {
	req := map[string]string{
		"player": player,
		"line":   line,
	}
	var reply Reply
	if err := c.call(http.MethodPost, apiPrefix+"/commands", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Complete returns completions for a partial command line
func (c *APIClient) Complete(player, line string) ([]string, error) {
	q := url.Values{}
	q.Set("player", player)
	q.Set("line", line)

	var resp struct {
		Completions []string `json:"completions"`
	}
	if err := c.call(http.MethodGet, apiPrefix+"/commands/complete?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Completions, nil
}

// Chat forwards a chat line, which a pending quantity prompt may consume
func (c *APIClient) Chat(player, line string) (*Reply, error) {
	req := map[string]string{
		"player": player,
		"line":   line,
	}
	var reply Reply
	if err := c.call(http.MethodPost, apiPrefix+"/chat", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// ListCrates returns the crates catalogue
func (c *APIClient) ListCrates() ([]domain.Crate, error) {
	var resp struct {
		Data []domain.Crate `json:"data"`
	}
	if err := c.call(http.MethodGet, apiPrefix+"/crates", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Healthy reports whether the API answers its liveness probe
func (c *APIClient) Healthy() bool {
	resp, err := c.Client.Get(c.BaseURL + "/healthz")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
