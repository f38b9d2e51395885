// Package atlas maps behaviors onto the fixed-geometry sprite sheet: one
// row per behavior, one column per animation frame. All addressing is pure
// arithmetic over configuration constants.
package atlas

import (
	"time"

	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

// Sheet geometry. TileDisplaySize is fixed configuration, not derived at
// runtime.
const (
	BaseTileSize    = 32
	ScaleFactor     = 4
	TileDisplaySize = BaseTileSize * ScaleFactor

	SheetColumns = 8
	SheetRows    = 6
)

// Spec is the immutable animation configuration for one behavior.
type Spec struct {
	Row        int
	FrameCount int
	Interval   time.Duration
}

// specs maps every known behavior to its animation spec. Row order matches
// pet.Behaviors; FrameCount never exceeds SheetColumns.
var specs = map[pet.Behavior]Spec{
	pet.BehaviorIdle:  {Row: 0, FrameCount: 4, Interval: 250 * time.Millisecond},
	pet.BehaviorSleep: {Row: 1, FrameCount: 4, Interval: 500 * time.Millisecond},
	pet.BehaviorWalk:  {Row: 2, FrameCount: 8, Interval: 120 * time.Millisecond},
	pet.BehaviorAlert: {Row: 3, FrameCount: 4, Interval: 180 * time.Millisecond},
	pet.BehaviorSit:   {Row: 4, FrameCount: 4, Interval: 300 * time.Millisecond},
	pet.BehaviorRun:   {Row: 5, FrameCount: 8, Interval: 80 * time.Millisecond},
}

// DefaultSpec is used for unknown behavior tags so an unexpected value
// never fails the render.
func DefaultSpec() Spec {
	return specs[pet.DefaultBehavior]
}

// SpecFor returns the animation spec for a behavior. Total: unknown
// behaviors get DefaultSpec.
func SpecFor(b pet.Behavior) Spec {
	if spec, ok := specs[b]; ok {
		return spec
	}
	return DefaultSpec()
}

// Offset returns the pixel offset into the sheet for the given behavior
// and frame index: (-frame*TileDisplaySize, -row*TileDisplaySize).
func Offset(b pet.Behavior, frame int) (x, y int) {
	spec := SpecFor(b)
	return -frame * TileDisplaySize, -spec.Row * TileDisplaySize
}

// BackgroundSize returns the rendered size of the full sheet.
func BackgroundSize() (w, h int) {
	return SheetColumns * TileDisplaySize, SheetRows * TileDisplaySize
}
