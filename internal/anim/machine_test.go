package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawyerbutton/Cyber-Cat/internal/atlas"
	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

func TestMachine_InitialState(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	cur := m.Cursor()
	assert.Equal(t, pet.DefaultBehavior, cur.Behavior)
	assert.Equal(t, 0, cur.Frame)
	assert.False(t, cur.Flipped)
}

func TestMachine_StartUsesCurrentSpecInterval(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Start()
	defer m.Stop()

	assert.Equal(t, atlas.SpecFor(pet.DefaultBehavior).Interval, m.ClockInterval())
}

func TestMachine_SwitchTo_ResetsFrameAndClock(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Start()
	defer m.Stop()

	// Move a few frames into the idle animation first.
	m.Advance()
	m.Advance()
	require.Equal(t, 2, m.Cursor().Frame)

	changed := m.SwitchTo(pet.BehaviorWalk)
	assert.True(t, changed)

	cur := m.Cursor()
	assert.Equal(t, pet.BehaviorWalk, cur.Behavior)
	assert.Equal(t, 0, cur.Frame, "transition must reset the frame index")
	assert.Equal(t, atlas.SpecFor(pet.BehaviorWalk).Interval, m.ClockInterval(),
		"transition must restart the clock at the new interval")
}

func TestMachine_SwitchTo_SameBehaviorIsNoOp(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Start()
	defer m.Stop()

	m.SwitchTo(pet.BehaviorWalk)
	m.Advance()
	m.Advance()
	gen := m.Generation()

	changed := m.SwitchTo(pet.BehaviorWalk)
	assert.False(t, changed)

	cur := m.Cursor()
	assert.Equal(t, 2, cur.Frame, "redundant push must not reset the frame")
	assert.Equal(t, gen, m.Generation(), "redundant push must not count as a transition")
}

func TestMachine_Advance_WrapsForEveryBehavior(t *testing.T) {
	t.Parallel()

	for _, b := range pet.Behaviors {
		b := b
		t.Run(string(b), func(t *testing.T) {
			t.Parallel()

			m := NewMachine()
			m.SwitchTo(b)
			defer m.Stop()

			spec := atlas.SpecFor(b)
			// Walk well past a full cycle; the frame must stay in range
			// and wrap back to zero exactly at the frame count.
			for i := 1; i <= spec.FrameCount*3; i++ {
				frame := m.Advance()
				assert.Equal(t, i%spec.FrameCount, frame)
				assert.GreaterOrEqual(t, frame, 0)
				assert.Less(t, frame, spec.FrameCount)
			}
		})
	}
}

func TestMachine_ApplyFlip_TriState(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	flip := true
	m.ApplyFlip(&flip)
	assert.True(t, m.Cursor().Flipped)

	// Absent field leaves orientation unchanged.
	m.ApplyFlip(nil)
	assert.True(t, m.Cursor().Flipped)

	flip = false
	m.ApplyFlip(&flip)
	assert.False(t, m.Cursor().Flipped)
}

func TestMachine_Apply_SnapshotDrivesBehaviorAndFlip(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	defer m.Stop()

	flip := true
	m.Apply(&pet.State{Behavior: "run", FlipDirection: &flip})

	cur := m.Cursor()
	assert.Equal(t, pet.BehaviorRun, cur.Behavior)
	assert.True(t, cur.Flipped)

	// Snapshot without flip keeps orientation; unknown behavior narrows
	// to the default rather than crashing.
	m.Apply(&pet.State{Behavior: "zoomies"})
	cur = m.Cursor()
	assert.Equal(t, pet.DefaultBehavior, cur.Behavior)
	assert.True(t, cur.Flipped)

	// Nil snapshots are dropped results from a torn-down view.
	require.NotPanics(t, func() { m.Apply(nil) })
}

func TestMachine_Apply_RacingSnapshotsNeverTear(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	defer m.Stop()

	// Two internally consistent snapshots: every observed cursor must
	// pair a behavior with its own snapshot's flip.
	flipped := true
	upright := false
	walk := &pet.State{Behavior: "walk", FlipDirection: &flipped}
	run := &pet.State{Behavior: "run", FlipDirection: &upright}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			m.Apply(walk)
			m.Apply(run)
		}
	}()

	for i := 0; i < 2000; i++ {
		m.Apply(run)
		m.Apply(walk)

		cur := m.Cursor()
		switch cur.Behavior {
		case pet.BehaviorWalk:
			require.True(t, cur.Flipped, "walk snapshot carries flip=true")
		case pet.BehaviorRun:
			require.False(t, cur.Flipped, "run snapshot carries flip=false")
		default:
			t.Fatalf("unexpected behavior %q", cur.Behavior)
		}
	}
	<-done
}

func TestMachine_TransitionScenario(t *testing.T) {
	t.Parallel()

	// idle -> walk -> walk -> sleep: exactly two genuine transitions,
	// each resetting the frame and restarting the clock.
	m := NewMachine()
	m.Start()
	defer m.Stop()

	startGen := m.Generation()

	resets := 0
	for _, b := range []pet.Behavior{pet.BehaviorWalk, pet.BehaviorWalk, pet.BehaviorSleep} {
		m.Advance()
		if m.SwitchTo(b) {
			resets++
			assert.Equal(t, 0, m.Cursor().Frame)
			assert.Equal(t, atlas.SpecFor(b).Interval, m.ClockInterval())
		}
	}

	assert.Equal(t, 2, resets)
	assert.Equal(t, startGen+2, m.Generation())
}

func TestMachine_RevertIf(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	defer m.Stop()

	m.SwitchTo(pet.BehaviorAlert)
	gen := m.Generation()

	// No transition in between: revert applies.
	assert.True(t, m.RevertIf(gen, pet.BehaviorIdle))
	assert.Equal(t, pet.BehaviorIdle, m.Cursor().Behavior)

	// A fresh push outranks the stale revert.
	m.SwitchTo(pet.BehaviorAlert)
	gen = m.Generation()
	m.SwitchTo(pet.BehaviorRun)
	assert.False(t, m.RevertIf(gen, pet.BehaviorIdle))
	assert.Equal(t, pet.BehaviorRun, m.Cursor().Behavior)
}
