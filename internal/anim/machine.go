// Package anim holds the sprite animation state: the frame clock and the
// behavior state machine that owns the animation cursor.
package anim

import (
	"sync"
	"time"

	"github.com/sawyerbutton/Cyber-Cat/internal/atlas"
	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

// Cursor is a read-only snapshot of the machine's animation state.
type Cursor struct {
	Behavior pet.Behavior
	Frame    int
	Flipped  bool
}

// Machine owns the animation cursor. Behavior changes reset the frame
// index and restart the clock atomically; re-announcing the current
// behavior is a no-op so redundant state pushes never stutter the
// animation.
type Machine struct {
	mu       sync.Mutex
	behavior pet.Behavior
	frame    int
	flipped  bool
	gen      uint64
	clock    *Clock
}

// NewMachine creates a Machine in the default behavior with a stopped
// clock. Call Start to begin ticking.
func NewMachine() *Machine {
	return &Machine{
		behavior: pet.DefaultBehavior,
		clock:    NewClock(),
	}
}

// Start begins the clock at the current behavior's interval.
func (m *Machine) Start() {
	m.mu.Lock()
	spec := atlas.SpecFor(m.behavior)
	m.mu.Unlock()

	m.clock.Start(spec.Interval)
}

// Stop halts the clock. Idempotent; called on teardown.
func (m *Machine) Stop() {
	m.clock.Stop()
}

// Ticks returns the clock's tick channel.
func (m *Machine) Ticks() <-chan time.Time {
	return m.clock.C()
}

// ClockInterval returns the interval the clock is currently ticking at.
func (m *Machine) ClockInterval() time.Duration {
	return m.clock.Interval()
}

// SwitchTo transitions the machine to a new behavior. Same-behavior calls
// are no-ops (no frame reset, no clock restart). Genuine transitions reset
// the frame to zero and restart the clock at the new spec's interval, all
// under one lock so no frame from the old behavior survives the switch.
// It reports whether a transition happened.
func (m *Machine) SwitchTo(b pet.Behavior) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.switchLocked(b)
}

// switchLocked performs the transition with m.mu held.
func (m *Machine) switchLocked(b pet.Behavior) bool {
	if b == m.behavior {
		return false
	}
	m.behavior = b
	m.frame = 0
	m.gen++
	m.clock.Start(atlas.SpecFor(b).Interval)
	return true
}

// Advance steps the frame index forward by one, wrapping at the current
// behavior's frame count. Returns the new frame index.
func (m *Machine) Advance() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	spec := atlas.SpecFor(m.behavior)
	m.frame = (m.frame + 1) % spec.FrameCount
	return m.frame
}

// ApplyFlip updates the facing direction. A nil flip means the incoming
// snapshot omitted the field, which leaves orientation unchanged.
func (m *Machine) ApplyFlip(flip *bool) {
	if flip == nil {
		return
	}
	m.mu.Lock()
	m.flipped = *flip
	m.mu.Unlock()
}

// Apply drives the machine from a full state snapshot. Behavior switch
// and direction update happen under one lock acquisition so two racing
// applies can never persist one snapshot's behavior with the other's
// flip.
func (m *Machine) Apply(st *pet.State) {
	if st == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.switchLocked(st.BehaviorTag())
	if st.FlipDirection != nil {
		m.flipped = *st.FlipDirection
	}
}

// Cursor returns a snapshot of the current animation state.
func (m *Machine) Cursor() Cursor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Cursor{Behavior: m.behavior, Frame: m.frame, Flipped: m.flipped}
}

// Generation returns a counter incremented on every genuine behavior
// transition. Callers scheduling a delayed revert capture it to detect
// whether the machine has moved on in the meantime.
func (m *Machine) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// RevertIf switches to b only if no transition has happened since the
// captured generation. Used by the local fallback animation so a real
// state push always outranks the scheduled revert.
func (m *Machine) RevertIf(gen uint64, b pet.Behavior) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gen != gen {
		return false
	}
	return m.switchLocked(b)
}
