// Package sim provides a scripted stand-in for the companion backend. It
// serves the same HTTP/SSE surface the real process would, replaying a
// behavior timeline from a YAML script, so the client can be developed and
// tested without the real process. It deliberately models no psychology:
// snapshots come straight from the script.
package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

// Step is one beat of the scripted timeline: a full snapshot broadcast,
// an optional thought, and a pause before the next step.
type Step struct {
	Snapshot pet.State `yaml:"snapshot"`
	Thought  string    `yaml:"thought,omitempty"`
	DelayMs  int       `yaml:"delay_ms"`
}

// Delay returns the step's pause as a duration.
func (s Step) Delay() time.Duration {
	return time.Duration(s.DelayMs) * time.Millisecond
}

// Script is a replayable behavior timeline.
type Script struct {
	Loop  bool   `yaml:"loop"`
	Steps []Step `yaml:"steps"`
}

// LoadScript reads and validates a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script file: %w", err)
	}

	if err := ValidateScript(&script); err != nil {
		return nil, err
	}

	return &script, nil
}

// ValidateScript checks the script for obvious mistakes.
func ValidateScript(s *Script) error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("script has no steps")
	}
	for i, step := range s.Steps {
		if step.DelayMs < 0 {
			return fmt.Errorf("step %d: delay_ms must not be negative", i)
		}
		if step.Snapshot.Behavior != "" && !pet.Known(step.Snapshot.Behavior) {
			return fmt.Errorf("step %d: unknown behavior %q", i, step.Snapshot.Behavior)
		}
	}
	return nil
}

// DefaultScript returns a built-in looping timeline used when no script
// file is given: a calm day in the life of a cyber-cat.
func DefaultScript() *Script {
	flip := func(b bool) *bool { return &b }
	base := pet.State{
		Energy:        70,
		Hunger:        35,
		Sleepiness:    20,
		Emotion:       pet.EmotionCalm,
		Trust:         40,
		Intimacy:      25,
		Understanding: 15,
	}

	step := func(behavior string, thought string, delayMs int, mutate func(*pet.State)) Step {
		snap := base
		snap.Behavior = behavior
		if mutate != nil {
			mutate(&snap)
		}
		return Step{Snapshot: snap, Thought: thought, DelayMs: delayMs}
	}

	return &Script{
		Loop: true,
		Steps: []Step{
			step("idle", "", 8000, nil),
			step("walk", "stretching my legs", 6000, func(s *pet.State) {
				s.FlipDirection = flip(false)
				s.Emotion = pet.EmotionCurious
			}),
			step("walk", "", 6000, func(s *pet.State) {
				s.FlipDirection = flip(true)
			}),
			step("sit", "this spot is mine now", 10000, nil),
			step("alert", "", 4000, func(s *pet.State) {
				s.Emotion = pet.EmotionCurious
			}),
			step("run", "zoomies!", 5000, func(s *pet.State) {
				s.FlipDirection = flip(false)
				s.Emotion = pet.EmotionPlayful
				s.Energy = 85
			}),
			step("sleep", "", 12000, func(s *pet.State) {
				s.IsSleeping = true
				s.Sleepiness = 80
				s.Emotion = pet.EmotionDown
			}),
		},
	}
}
