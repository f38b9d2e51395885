// Package bridge keeps the animation state machine and the thought
// presenter synchronized with the backend daemon. It owns the three
// external channels — bootstrap fetch, push subscription, and user
// commands — and guarantees that no backend failure ever propagates past
// it: failures degrade to the prior local state or a transient local
// fallback animation.
package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/sawyerbutton/Cyber-Cat/internal/anim"
	"github.com/sawyerbutton/Cyber-Cat/internal/logging"
	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
	"github.com/sawyerbutton/Cyber-Cat/internal/stream"
	"github.com/sawyerbutton/Cyber-Cat/internal/thought"
)

// DefaultFallbackDuration is how long the local alert animation plays
// after a failed user command before reverting to idle.
const DefaultFallbackDuration = 2500 * time.Millisecond

// Recorder receives thoughts and interactions for the local journal.
// Implementations must be safe for concurrent use. Recording failures are
// logged and otherwise ignored; the journal never gates rendering.
type Recorder interface {
	Record(kind, content string, weight float64) error
}

// Bridge routes backend state into the machine and presenter.
type Bridge struct {
	client   *stream.Client
	machine  *anim.Machine
	thoughts *thought.Presenter

	fallbackFor time.Duration
	recorder    Recorder
	onEvent     func(kind, detail string)

	mu     sync.Mutex
	latest *pet.State
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithFallbackDuration overrides how long the failed-command alert
// animation plays before reverting to idle.
func WithFallbackDuration(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.fallbackFor = d
		}
	}
}

// WithRecorder attaches a journal recorder for thoughts and interactions.
func WithRecorder(r Recorder) Option {
	return func(b *Bridge) {
		b.recorder = r
	}
}

// WithEventSink registers a callback invoked for every applied event and
// command result. The TUI uses it to feed the event log view.
func WithEventSink(fn func(kind, detail string)) Option {
	return func(b *Bridge) {
		b.onEvent = fn
	}
}

// New creates a Bridge wiring the client to the machine and presenter.
func New(client *stream.Client, machine *anim.Machine, thoughts *thought.Presenter, opts ...Option) *Bridge {
	b := &Bridge{
		client:      client,
		machine:     machine,
		thoughts:    thoughts,
		fallbackFor: DefaultFallbackDuration,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bootstrap fetches the current snapshot once and applies it. An
// unreachable backend is silent and non-fatal: local defaults stay in
// place until a push or command succeeds.
func (b *Bridge) Bootstrap(ctx context.Context) {
	state, err := b.client.GetState(ctx)
	if err != nil {
		logging.Debug("bootstrap state fetch failed, keeping defaults", "error", err)
		return
	}
	b.applyState(state)
}

// Subscription is the handle for a running push subscription. Stop is
// idempotent and releases the subscription; events delivered into a
// stopped subscription are dropped safely.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop releases the subscription. Safe to call multiple times.
func (s *Subscription) Stop() {
	s.once.Do(s.cancel)
	<-s.done
}

// Subscribe starts consuming push events in the background and returns a
// handle for teardown. Subscription failures never surface to the caller:
// the client reconnects on its own, and if it ultimately gives up the
// component simply stays static on its last known state.
//
// The subscription attaches at the daemon's current sequence so retained
// history is not replayed on attach: a thought broadcast from before the
// client connected must not pop up as a fresh bubble. The retained ring
// only serves reconnect catch-up.
func (b *Bridge) Subscribe(ctx context.Context) *Subscription {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	fromSeq := uint64(0)
	healthCtx, healthCancel := context.WithTimeout(subCtx, 5*time.Second)
	if health, err := b.client.Health(healthCtx); err == nil {
		fromSeq = health.LastSeq + 1
	} else {
		logging.Debug("health fetch failed, subscribing without catch-up point", "error", err)
	}
	healthCancel()

	eventCh, errCh := b.client.Subscribe(subCtx, fromSeq)

	go func() {
		defer close(sub.done)
		for {
			select {
			case <-subCtx.Done():
				return
			case err, ok := <-errCh:
				if ok && err != nil {
					logging.Warn("push subscription ended, staying static", "error", err)
				}
				return
			case event, ok := <-eventCh:
				if !ok {
					return
				}
				b.handleEvent(event)
			}
		}
	}()

	return sub
}

// handleEvent dispatches one push event. Malformed payloads are logged
// and dropped; they never interrupt the stream.
func (b *Bridge) handleEvent(event *stream.Event) {
	switch event.Type {
	case stream.EventTypeState:
		state, err := event.StateData()
		if err != nil {
			logging.Warn("dropping malformed state broadcast", "error", err)
			return
		}
		b.applyState(state)

	case stream.EventTypeThought:
		data, err := event.ThoughtData()
		if err != nil {
			logging.Warn("dropping malformed thought broadcast", "error", err)
			return
		}
		if data.Text == "" {
			return
		}
		b.thoughts.Show(data.Text)
		b.record("thought", data.Text, 0.5)
		b.emit("thought", data.Text)

	case stream.EventTypeSpeech:
		speech, err := event.SpeechData()
		if err != nil {
			logging.Warn("dropping malformed speech response", "error", err)
			return
		}
		if text, ok := speech.ThoughtText(); ok {
			b.thoughts.Show(text)
			b.record("thought", text, 0.7)
		}
		b.emit("speech", speech.Action)

	default:
		logging.Debug("ignoring unknown event type", "type", event.Type)
	}
}

// Click reports a single-tap interaction. The direct response snapshot is
// applied synchronously; failure plays the local fallback animation.
func (b *Bridge) Click(ctx context.Context) {
	b.command(ctx, "click", 0.3, b.client.Click)
}

// Feed reports a feeding action.
func (b *Bridge) Feed(ctx context.Context) {
	b.command(ctx, "feed", 0.6, b.client.Feed)
}

// Speak sends a user utterance. The returned snapshot is applied here;
// the provoked thought and speech-response events arrive later on the
// push stream and are handled independently.
func (b *Bridge) Speak(ctx context.Context, message string) {
	if message == "" {
		return
	}
	b.command(ctx, "speak", 0.7, func(ctx context.Context) (*pet.State, error) {
		return b.client.Speak(ctx, message)
	})
	b.record("user_speech", message, 0.7)
}

// command issues one request/response call and applies the result. On
// failure the UI still visibly acknowledges the interaction: switch to
// alert, then revert to idle unless a genuine transition happened first.
func (b *Bridge) command(ctx context.Context, kind string, weight float64, call func(context.Context) (*pet.State, error)) {
	state, err := call(ctx)
	if err != nil {
		logging.Warn("command failed, playing local fallback", "command", kind, "error", err)
		b.emit("command-failed", kind)
		b.playFallback()
		return
	}
	b.applyState(state)
	b.record("interaction", kind, weight)
	b.emit("command", kind)
}

// playFallback switches to the alert animation and schedules a revert to
// idle. The revert is generation-guarded: any real transition in the
// meantime outranks it.
func (b *Bridge) playFallback() {
	b.machine.SwitchTo(pet.BehaviorAlert)
	gen := b.machine.Generation()
	time.AfterFunc(b.fallbackFor, func() {
		b.machine.RevertIf(gen, pet.BehaviorIdle)
	})
}

// applyState applies one full snapshot: behavior and direction together,
// from the same snapshot. Last received wins across pushes.
func (b *Bridge) applyState(state *pet.State) {
	if state == nil {
		return
	}
	b.machine.Apply(state)

	b.mu.Lock()
	b.latest = state
	b.mu.Unlock()

	b.emit("state", state.Behavior)
}

// Latest returns the most recently applied snapshot, or nil before the
// first successful fetch or push.
func (b *Bridge) Latest() *pet.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}

func (b *Bridge) record(kind, content string, weight float64) {
	if b.recorder == nil {
		return
	}
	if err := b.recorder.Record(kind, content, weight); err != nil {
		logging.Warn("journal record failed", "kind", kind, "error", err)
	}
}

func (b *Bridge) emit(kind, detail string) {
	if b.onEvent != nil {
		b.onEvent(kind, detail)
	}
}
