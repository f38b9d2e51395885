package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sawyerbutton/Cyber-Cat/internal/logging"
	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
	"github.com/sawyerbutton/Cyber-Cat/internal/stream"
)

const (
	// DefaultPort is the default port for the daemon's HTTP server.
	DefaultPort = 8374

	// DefaultPollInterval is how often SSE handlers check the ring for
	// new events.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultSpeechDelay is how long after a speak command the canned
	// speech-response and thought events follow on the stream,
	// mimicking the real process's asynchronous reply.
	DefaultSpeechDelay = 750 * time.Millisecond

	// ringCapacity bounds the in-memory replay ring.
	ringCapacity = 256

	// keepaliveInterval spaces the SSE keepalive comments.
	keepaliveInterval = 15 * time.Second
)

// cannedReplies is the rotation of speech responses the sim serves in
// place of the real process's generated ones.
var cannedReplies = []pet.SpeechResponse{
	{Action: "glance", Thought: strPtr("I heard that"), Behavior: "alert"},
	{Action: "approach", Thought: strPtr("tell me more"), Behavior: "walk"},
	{Action: "sit", Thought: strPtr("I am listening, mostly"), Behavior: "sit"},
	{Action: "ignore", Thought: nil, Behavior: "idle"},
}

func strPtr(s string) *string { return &s }

// Server serves the backend HTTP/SSE surface from a script: GET /state,
// GET /stream, GET /health, and the POST command endpoints.
type Server struct {
	port         int
	token        string
	pollInterval time.Duration
	speechDelay  time.Duration
	script       *Script

	mu       sync.Mutex
	state    pet.State
	events   []*stream.Event
	nextSeq  uint64
	replies  int
	running  bool
	listener net.Listener
	server   *http.Server
	shutdown chan struct{}
}

// Options holds configuration for creating a Server.
type Options struct {
	Port         int
	Token        string
	PollInterval time.Duration
	SpeechDelay  time.Duration
	Script       *Script
}

// NewServer creates a sim server. A nil script falls back to the
// built-in default timeline; port 0 binds an ephemeral port.
func NewServer(opts Options) *Server {
	pollInterval := opts.PollInterval
	if pollInterval == 0 {
		pollInterval = DefaultPollInterval
	}
	speechDelay := opts.SpeechDelay
	if speechDelay == 0 {
		speechDelay = DefaultSpeechDelay
	}
	script := opts.Script
	if script == nil {
		script = DefaultScript()
	}

	s := &Server{
		port:         opts.Port,
		token:        opts.Token,
		pollInterval: pollInterval,
		speechDelay:  speechDelay,
		script:       script,
		nextSeq:      1,
		shutdown:     make(chan struct{}),
	}
	if len(script.Steps) > 0 {
		s.state = script.Steps[0].Snapshot
	}
	return s
}

// Start begins listening. Using port 0 picks an ephemeral port; Addr
// reports the bound address either way.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = ln
	s.running = true

	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/stream", s.handleStream)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/click", s.handleClick)
	mux.HandleFunc("/feed", s.handleFeed)
	mux.HandleFunc("/speak", s.handleSpeak)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // No timeout for SSE
		IdleTimeout:  120 * time.Second,
	}
	server := s.server
	s.mu.Unlock()

	go func() {
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			logging.Error("sim server stopped unexpectedly", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server. Idempotent.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.shutdown)
	server := s.server
	s.mu.Unlock()

	return server.Shutdown(ctx)
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the base URL of the running server, suitable for a client
// on the same host.
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	if host, port, err := net.SplitHostPort(addr); err == nil {
		if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
			addr = net.JoinHostPort("127.0.0.1", port)
		}
	}
	return "http://" + addr
}

// Run plays the script timeline until the context is done: each step
// applies its snapshot (broadcast as a state event), emits its thought if
// any, then waits out the step delay. Non-looping scripts hold their last
// snapshot afterward.
func (s *Server) Run(ctx context.Context) {
	for {
		for _, step := range s.script.Steps {
			select {
			case <-ctx.Done():
				return
			case <-s.shutdown:
				return
			default:
			}

			s.applyStep(step)

			select {
			case <-ctx.Done():
				return
			case <-s.shutdown:
				return
			case <-time.After(step.Delay()):
			}
		}
		if !s.script.Loop {
			return
		}
	}
}

// applyStep installs the step snapshot and publishes its events.
func (s *Server) applyStep(step Step) {
	s.mu.Lock()
	s.state = step.Snapshot
	s.mu.Unlock()

	s.publish(stream.EventTypeState, step.Snapshot)
	if step.Thought != "" {
		s.publish(stream.EventTypeThought, pet.Thought{Text: step.Thought})
	}
}

// publish appends an event to the replay ring with the next sequence
// number. The ring is bounded; old events fall off and late subscribers
// simply miss them.
func (s *Server) publish(eventType stream.EventType, payload any) {
	event, err := stream.NewEvent(eventType, payload)
	if err != nil {
		logging.Error("failed to build event", "type", eventType, "error", err)
		return
	}

	s.mu.Lock()
	event.Seq = s.nextSeq
	s.nextSeq++
	s.events = append(s.events, event)
	if len(s.events) > ringCapacity {
		s.events = s.events[len(s.events)-ringCapacity:]
	}
	s.mu.Unlock()
}

// eventsFrom returns retained events with Seq >= fromSeq.
func (s *Server) eventsFrom(fromSeq uint64) []*stream.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*stream.Event
	for _, ev := range s.events {
		if ev.Seq >= fromSeq {
			out = append(out, ev)
		}
	}
	return out
}

// snapshot returns a copy of the current state.
func (s *Server) snapshot() pet.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// lastSeq returns the sequence of the most recently published event.
func (s *Server) lastSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextSeq - 1
}

// handleState returns the current snapshot.
// GET /state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.authenticate(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s.writeSnapshot(w)
}

// handleHealth returns a simple health check response.
// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"last_seq": s.lastSeq(),
	})
}

// handleStream implements the SSE endpoint.
// GET /stream?from_seq=N
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.authenticate(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	fromSeq := uint64(0)
	if fromSeqStr := r.URL.Query().Get("from_seq"); fromSeqStr != "" {
		parsed, err := strconv.ParseUint(fromSeqStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid from_seq parameter", http.StatusBadRequest)
			return
		}
		fromSeq = parsed
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Replay retained events first.
	for _, event := range s.eventsFrom(fromSeq) {
		if err := writeSSEEvent(w, event); err != nil {
			return
		}
		flusher.Flush()
		if event.Seq >= fromSeq {
			fromSeq = event.Seq + 1
		}
	}

	ctx := r.Context()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.shutdown:
			return
		case <-keepalive.C:
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			for _, event := range s.eventsFrom(fromSeq) {
				if err := writeSSEEvent(w, event); err != nil {
					return
				}
				flusher.Flush()
				if event.Seq >= fromSeq {
					fromSeq = event.Seq + 1
				}
			}
		}
	}
}

// writeSSEEvent sends a single event in SSE format.
func writeSSEEvent(w http.ResponseWriter, event *stream.Event) error {
	data, err := event.Marshal()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", event.Seq, event.Type, data)
	return err
}

// handleClick acknowledges a tap: interaction bookkeeping only, no
// behavior decision (that is the script's job).
// POST /click
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	if !s.commandPreamble(w, r) {
		return
	}

	s.mu.Lock()
	s.state.MinutesSinceInteraction = 0
	s.state.Trust = clampGauge(s.state.Trust + 0.5)
	s.mu.Unlock()

	s.writeSnapshot(w)
}

// handleFeed acknowledges feeding.
// POST /feed
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if !s.commandPreamble(w, r) {
		return
	}

	s.mu.Lock()
	s.state.MinutesSinceInteraction = 0
	s.state.Hunger = clampGauge(s.state.Hunger - 25)
	s.state.Intimacy = clampGauge(s.state.Intimacy + 1)
	s.mu.Unlock()

	s.writeSnapshot(w)
}

// handleSpeak returns a fresh snapshot immediately and schedules the
// canned speech-response plus its thought to arrive later on the stream,
// echoing the real process's asynchronous flow.
// POST /speak
func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	if !s.commandPreamble(w, r) {
		return
	}

	var req stream.SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid speak JSON: %v", err), http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.state.MinutesSinceInteraction = 0
	s.state.Understanding = clampGauge(s.state.Understanding + 0.5)
	reply := cannedReplies[s.replies%len(cannedReplies)]
	s.replies++
	s.mu.Unlock()

	time.AfterFunc(s.speechDelay, func() {
		s.publish(stream.EventTypeSpeech, reply)
		if text, ok := reply.ThoughtText(); ok {
			s.publish(stream.EventTypeThought, pet.Thought{Text: text})
		}
	})

	s.writeSnapshot(w)
}

// commandPreamble enforces method and auth for the POST endpoints.
func (s *Server) commandPreamble(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if !s.authenticate(r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// writeSnapshot replies with the current state as JSON.
func (s *Server) writeSnapshot(w http.ResponseWriter) {
	state := s.snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&state)
}

// authenticate checks the request for valid authentication. If no token
// is configured, all requests are allowed.
func (s *Server) authenticate(r *http.Request) bool {
	if s.token == "" {
		return true
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		// Also check query parameter as fallback for SSE
		return r.URL.Query().Get("token") == s.token
	}

	if len(auth) > 7 && auth[:7] == "Bearer " {
		return auth[7:] == s.token
	}

	return false
}

// clampGauge keeps gauge values in the backend's [0, 100] range.
func clampGauge(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
