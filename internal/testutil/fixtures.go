package testutil

import "github.com/sawyerbutton/Cyber-Cat/internal/pet"

// BoolPtr returns a pointer to b, for the State.FlipDirection field.
func BoolPtr(b bool) *bool { return &b }

// StrPtr returns a pointer to s, for the SpeechResponse.Thought field.
func StrPtr(s string) *string { return &s }

// SampleState returns a typical snapshot with the given behavior.
func SampleState(behavior string) pet.State {
	return pet.State{
		Energy:        70,
		Hunger:        35,
		Sleepiness:    20,
		Emotion:       pet.EmotionCalm,
		Trust:         40,
		Intimacy:      25,
		Understanding: 15,
		Behavior:      behavior,
	}
}

// SampleFlippedState returns a walk snapshot facing the flipped direction.
func SampleFlippedState() pet.State {
	state := SampleState("walk")
	state.FlipDirection = BoolPtr(true)
	return state
}

// SampleSleepState returns a sleeping snapshot.
func SampleSleepState() pet.State {
	state := SampleState("sleep")
	state.IsSleeping = true
	state.Sleepiness = 85
	state.Emotion = pet.EmotionDown
	return state
}

// SampleSpeechResponse returns a speech response that carries a thought.
func SampleSpeechResponse() pet.SpeechResponse {
	return pet.SpeechResponse{
		Action:   "glance",
		Thought:  StrPtr("I heard that"),
		Behavior: "alert",
	}
}

// SampleSilentSpeechResponse returns a speech response with no thought.
func SampleSilentSpeechResponse() pet.SpeechResponse {
	return pet.SpeechResponse{
		Action:   "ignore",
		Thought:  nil,
		Behavior: "idle",
	}
}
