package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

// Client provides HTTP-based access to the companion daemon. It handles
// the bootstrap state fetch, the SSE push subscription with automatic
// reconnection and catch-up, and the interaction commands.
type Client struct {
	// baseURL is the base URL of the daemon (e.g. "http://localhost:8374")
	baseURL string

	// httpClient is used for the streaming subscription (no timeout).
	httpClient *http.Client

	// authToken is the optional bearer token.
	authToken string

	// lastSeq is the sequence number of the last event received.
	lastSeq uint64

	// mu protects lastSeq.
	mu sync.RWMutex

	// reconnectInterval is the wait between reconnection attempts.
	reconnectInterval time.Duration

	// maxReconnectAttempts caps reconnection attempts (0 = unlimited).
	maxReconnectAttempts int
}

// Option configures a Client.
type Option func(*Client)

// WithAuthToken sets the bearer token for the client.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithReconnectInterval sets the interval between reconnection attempts.
func WithReconnectInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.reconnectInterval = interval
	}
}

// WithMaxReconnectAttempts caps reconnection attempts. 0 means unlimited.
func WithMaxReconnectAttempts(attempts int) Option {
	return func(c *Client) {
		c.maxReconnectAttempts = attempts
	}
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 0, // No timeout for streaming connections
		},
		reconnectInterval:    5 * time.Second,
		maxReconnectAttempts: 0,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetState fetches the current pet snapshot. Used for bootstrap.
func (c *Client) GetState(ctx context.Context) (*pet.State, error) {
	return c.getSnapshot(ctx, "/state")
}

// Health reports the daemon's liveness and its last published sequence
// number. Subscribers use LastSeq to attach at the live edge of the
// stream instead of replaying retained history.
type Health struct {
	Status  string `json:"status"`
	LastSeq uint64 `json:"last_seq"`
}

// Health fetches the daemon's health snapshot.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.addAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var h Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return nil, fmt.Errorf("failed to decode health: %w", err)
	}
	return &h, nil
}

// Click reports a single-tap interaction and returns the fresh snapshot.
func (c *Client) Click(ctx context.Context) (*pet.State, error) {
	return c.postSnapshot(ctx, "/click", nil)
}

// Feed reports a feeding action and returns the fresh snapshot.
func (c *Client) Feed(ctx context.Context) (*pet.State, error) {
	return c.postSnapshot(ctx, "/feed", nil)
}

// Speak sends a user utterance. The response carries a fresh snapshot;
// the thought and speech-response it provokes arrive later on the push
// stream as independent events.
func (c *Client) Speak(ctx context.Context, message string) (*pet.State, error) {
	body, err := json.Marshal(SpeakRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speak request: %w", err)
	}
	return c.postSnapshot(ctx, "/speak", body)
}

// Subscribe returns a channel that receives push events from the daemon.
// It uses Server-Sent Events for real-time streaming and automatically
// reconnects, catching up from the last seen sequence number. The channel
// is closed when the context is canceled or reconnect attempts run out.
// If fromSeq is 0, all retained events are replayed first.
func (c *Client) Subscribe(ctx context.Context, fromSeq uint64) (<-chan *Event, <-chan error) {
	eventCh := make(chan *Event, 100)
	errCh := make(chan error, 1)

	c.mu.Lock()
	if fromSeq > 0 {
		c.lastSeq = fromSeq - 1
	} else {
		c.lastSeq = 0
	}
	c.mu.Unlock()

	go c.subscriptionLoop(ctx, eventCh, errCh)

	return eventCh, errCh
}

// subscriptionLoop handles the main subscription loop with reconnection.
func (c *Client) subscriptionLoop(ctx context.Context, eventCh chan<- *Event, errCh chan<- error) {
	defer close(eventCh)
	defer close(errCh)

	attempts := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.RLock()
		fromSeq := c.lastSeq + 1
		c.mu.RUnlock()

		err := c.streamEvents(ctx, fromSeq, eventCh)
		if err == nil {
			// Stream ended normally (context canceled)
			return
		}

		if ctx.Err() != nil {
			return
		}

		attempts++
		if c.maxReconnectAttempts > 0 && attempts >= c.maxReconnectAttempts {
			errCh <- fmt.Errorf("max reconnection attempts (%d) exceeded: %w", c.maxReconnectAttempts, err)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.reconnectInterval):
			// Continue to reconnect
		}
	}
}

// streamEvents connects to the SSE endpoint and streams events. Returns
// nil if the context is canceled, or an error if the connection fails.
func (c *Client) streamEvents(ctx context.Context, fromSeq uint64, eventCh chan<- *Event) error {
	url := fmt.Sprintf("%s/stream?from_seq=%d", c.baseURL, fromSeq)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.addAuthHeader(req)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	return c.parseSSEStream(ctx, resp.Body, eventCh)
}

// parseSSEStream parses Server-Sent Events from the response body.
func (c *Client) parseSSEStream(ctx context.Context, body io.Reader, eventCh chan<- *Event) error {
	scanner := bufio.NewScanner(body)
	// Increase buffer for potentially large events
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var dataLines []string

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := scanner.Text()

		// Empty line signals end of event
		if line == "" {
			if len(dataLines) > 0 {
				data := strings.Join(dataLines, "\n")
				event, err := UnmarshalEvent([]byte(data))
				if err != nil {
					// Skip malformed events but continue
					dataLines = nil
					continue
				}

				// Update lastSeq before sending
				c.mu.Lock()
				if event.Seq > c.lastSeq {
					c.lastSeq = event.Seq
				}
				c.mu.Unlock()

				select {
				case <-ctx.Done():
					return nil
				case eventCh <- event:
				}

				dataLines = nil
			}
			continue
		}

		// Parse SSE format: "data: {...json...}"
		if strings.HasPrefix(line, "data: ") {
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		} else if strings.HasPrefix(line, "data:") {
			// Handle "data:" without space
			dataLines = append(dataLines, strings.TrimPrefix(line, "data:"))
		}
		// Ignore other SSE fields (event:, id:, retry:) and comments
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stream: %w", err)
	}

	return nil
}

// getSnapshot performs a GET that returns a pet snapshot.
func (c *Client) getSnapshot(ctx context.Context, path string) (*pet.State, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.addAuthHeader(req)

	return c.doSnapshot(req)
}

// postSnapshot performs a command POST that returns a pet snapshot.
func (c *Client) postSnapshot(ctx context.Context, path string, body []byte) (*pet.State, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.addAuthHeader(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.doSnapshot(req)
}

// doSnapshot executes a request and decodes the snapshot response.
func (c *Client) doSnapshot(req *http.Request) (*pet.State, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var state pet.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &state, nil
}

// LastSeq returns the sequence number of the last received event.
func (c *Client) LastSeq() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSeq
}

// BaseURL returns the base URL of the daemon.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// addAuthHeader adds the authorization header if a token is configured.
func (c *Client) addAuthHeader(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}
