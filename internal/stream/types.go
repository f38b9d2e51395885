// Package stream provides the event envelope and HTTP/SSE client used to
// keep the companion client synchronized with the backend daemon.
package stream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

// EventType identifies the kind of push event on the stream.
type EventType string

const (
	// EventTypeState is a full pet-state broadcast.
	EventTypeState EventType = "sophie-update"
	// EventTypeThought is a thought-bubble broadcast.
	EventTypeThought EventType = "sophie-thought"
	// EventTypeSpeech is the asynchronous response to a speak command.
	EventTypeSpeech EventType = "sophie-speech-response"
)

// Event is one message on the push stream. Events are serialized to JSON
// for storage and transmission.
type Event struct {
	// Seq is the sequence number assigned by the daemon's event ring.
	// Zero for events not yet published.
	Seq uint64 `json:"seq,omitempty"`

	// Type identifies what kind of event this is.
	Type EventType `json:"type"`

	// Timestamp is when the event was created.
	Timestamp time.Time `json:"timestamp"`

	// Data contains the type-specific payload. Use the typed accessor
	// methods to get the concrete type.
	Data json.RawMessage `json:"data"`
}

// NewEvent creates a new Event with the given type and payload.
func NewEvent(eventType EventType, data any) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	return &Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}

// MustNewEvent creates a new Event, panicking on error. Use only when the
// payload is known to be serializable.
func MustNewEvent(eventType EventType, data any) *Event {
	e, err := NewEvent(eventType, data)
	if err != nil {
		panic(err)
	}
	return e
}

// Marshal serializes the event to JSON bytes.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalEvent deserializes an Event from JSON bytes.
func UnmarshalEvent(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &e, nil
}

// StateData returns the snapshot payload if this is a state broadcast.
func (e *Event) StateData() (*pet.State, error) {
	if e.Type != EventTypeState {
		return nil, fmt.Errorf("event is not a state broadcast: %s", e.Type)
	}
	var data pet.State
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state data: %w", err)
	}
	return &data, nil
}

// ThoughtData returns the thought payload if this is a thought broadcast.
func (e *Event) ThoughtData() (*pet.Thought, error) {
	if e.Type != EventTypeThought {
		return nil, fmt.Errorf("event is not a thought broadcast: %s", e.Type)
	}
	var data pet.Thought
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thought data: %w", err)
	}
	return &data, nil
}

// SpeechData returns the speech-response payload if this is a speech event.
func (e *Event) SpeechData() (*pet.SpeechResponse, error) {
	if e.Type != EventTypeSpeech {
		return nil, fmt.Errorf("event is not a speech response: %s", e.Type)
	}
	var data pet.SpeechResponse
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal speech data: %w", err)
	}
	return &data, nil
}

// SpeakRequest is the body of a POST /speak command.
type SpeakRequest struct {
	Message string `json:"message"`
}
