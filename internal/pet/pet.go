// Package pet defines the wire-level data model shared between the companion
// client and the backend process: the full state snapshot, the behavior tags
// that drive animation, and the push-event payloads.
package pet

import "strings"

// Behavior is an animation category. The backend sends it as an open string;
// ParseBehavior narrows it to the closed set at the boundary.
type Behavior string

const (
	BehaviorIdle  Behavior = "idle"
	BehaviorSleep Behavior = "sleep"
	BehaviorWalk  Behavior = "walk"
	BehaviorAlert Behavior = "alert"
	BehaviorSit   Behavior = "sit"
	BehaviorRun   Behavior = "run"
)

// DefaultBehavior is what unknown or absent behavior tags narrow to.
const DefaultBehavior = BehaviorIdle

// Behaviors lists every known behavior in sheet-row order.
var Behaviors = []Behavior{
	BehaviorIdle,
	BehaviorSleep,
	BehaviorWalk,
	BehaviorAlert,
	BehaviorSit,
	BehaviorRun,
}

// ParseBehavior narrows an open behavior string to the closed Behavior set.
// Unknown tags fall back to DefaultBehavior rather than propagating a
// dynamic string through the state machine.
func ParseBehavior(s string) Behavior {
	b := Behavior(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Behaviors {
		if b == known {
			return b
		}
	}
	return DefaultBehavior
}

// Known reports whether s is one of the closed Behavior tags.
func Known(s string) bool {
	b := Behavior(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Behaviors {
		if b == known {
			return true
		}
	}
	return false
}

// State is the full snapshot pushed by the backend. It is replaced
// wholesale on every update; the client never merges partial states.
//
// FlipDirection is a pointer so a producer that omits the field leaves
// the current orientation unchanged instead of resetting it.
type State struct {
	Energy                  float64  `json:"energy" yaml:"energy"`
	Hunger                  float64  `json:"hunger" yaml:"hunger"`
	Sleepiness              float64  `json:"sleepiness" yaml:"sleepiness"`
	Emotion                 string   `json:"emotion" yaml:"emotion"`
	Trust                   float64  `json:"trust" yaml:"trust"`
	Intimacy                float64  `json:"intimacy" yaml:"intimacy"`
	Understanding           float64  `json:"understanding" yaml:"understanding"`
	IsSleeping              bool     `json:"isSleeping" yaml:"is_sleeping"`
	Behavior                string   `json:"behavior" yaml:"behavior"`
	FlipDirection           *bool    `json:"flipDirection,omitempty" yaml:"flip_direction,omitempty"`
	MinutesSinceInteraction int      `json:"minutesSinceInteraction" yaml:"minutes_since_interaction"`
}

// BehaviorTag returns the snapshot's behavior narrowed to the closed set.
func (s *State) BehaviorTag() Behavior {
	return ParseBehavior(s.Behavior)
}

// Thought is the payload of a thought-broadcast event.
type Thought struct {
	Text string `json:"text"`
}

// SpeechResponse is the payload of a speech-response event, emitted by the
// backend after the user speaks. Thought may be absent or the literal
// string "null" when the backend chose not to verbalize anything.
type SpeechResponse struct {
	Action   string  `json:"action"`
	Thought  *string `json:"thought"`
	Behavior string  `json:"behavior"`
}

// ThoughtText returns the displayable thought text, if any. Empty strings
// and the literal "null" are filtered out, matching the backend contract.
func (r *SpeechResponse) ThoughtText() (string, bool) {
	if r.Thought == nil {
		return "", false
	}
	t := *r.Thought
	if t == "" || t == "null" {
		return "", false
	}
	return t, true
}

// Emotion labels the backend is known to send. Display-only; the client
// never branches on them beyond rendering.
const (
	EmotionCalm      = "Calm"
	EmotionHappy     = "Happy"
	EmotionBored     = "Bored"
	EmotionIrritated = "Irritated"
	EmotionDown      = "Down"
	EmotionCurious   = "Curious"
	EmotionPlayful   = "Playful"
)
