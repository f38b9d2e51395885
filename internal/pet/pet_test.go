package pet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBehavior(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Behavior
	}{
		{name: "known tag", input: "walk", want: BehaviorWalk},
		{name: "uppercase tag", input: "SLEEP", want: BehaviorSleep},
		{name: "padded tag", input: "  run  ", want: BehaviorRun},
		{name: "unknown tag falls back", input: "zoomies", want: BehaviorIdle},
		{name: "empty falls back", input: "", want: BehaviorIdle},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseBehavior(tt.input))
		})
	}
}

func TestKnown(t *testing.T) {
	t.Parallel()

	for _, b := range Behaviors {
		assert.True(t, Known(string(b)), "behavior %q should be known", b)
	}
	assert.False(t, Known("zoomies"))
	assert.False(t, Known(""))
}

func TestState_FlipDirectionOptional(t *testing.T) {
	t.Parallel()

	// flipDirection present
	var withFlip State
	err := json.Unmarshal([]byte(`{"behavior":"walk","flipDirection":true}`), &withFlip)
	require.NoError(t, err)
	require.NotNil(t, withFlip.FlipDirection)
	assert.True(t, *withFlip.FlipDirection)

	// flipDirection absent must decode to nil, not false
	var withoutFlip State
	err = json.Unmarshal([]byte(`{"behavior":"walk"}`), &withoutFlip)
	require.NoError(t, err)
	assert.Nil(t, withoutFlip.FlipDirection)
}

func TestState_BehaviorTag(t *testing.T) {
	t.Parallel()

	s := &State{Behavior: "sit"}
	assert.Equal(t, BehaviorSit, s.BehaviorTag())

	s = &State{Behavior: "not-a-behavior"}
	assert.Equal(t, DefaultBehavior, s.BehaviorTag())
}

func TestState_DecodesBackendSnapshot(t *testing.T) {
	t.Parallel()

	// Shape as emitted by the backend (camelCase).
	payload := `{
		"energy": 72.5,
		"hunger": 30.0,
		"sleepiness": 10.0,
		"emotion": "Curious",
		"trust": 45.0,
		"intimacy": 20.0,
		"understanding": 15.0,
		"isSleeping": false,
		"behavior": "alert",
		"flipDirection": false,
		"minutesSinceInteraction": 12
	}`

	var s State
	require.NoError(t, json.Unmarshal([]byte(payload), &s))
	assert.Equal(t, 72.5, s.Energy)
	assert.Equal(t, "Curious", s.Emotion)
	assert.False(t, s.IsSleeping)
	assert.Equal(t, BehaviorAlert, s.BehaviorTag())
	require.NotNil(t, s.FlipDirection)
	assert.False(t, *s.FlipDirection)
	assert.Equal(t, 12, s.MinutesSinceInteraction)
}

func TestSpeechResponse_ThoughtText(t *testing.T) {
	t.Parallel()

	str := func(s string) *string { return &s }

	tests := []struct {
		name    string
		thought *string
		want    string
		wantOK  bool
	}{
		{name: "present", thought: str("hello"), want: "hello", wantOK: true},
		{name: "nil", thought: nil, wantOK: false},
		{name: "empty", thought: str(""), wantOK: false},
		{name: "literal null string", thought: str("null"), wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &SpeechResponse{Action: "glance", Thought: tt.thought}
			got, ok := r.ThoughtText()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
