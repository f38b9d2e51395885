package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawyerbutton/Cyber-Cat/internal/anim"
	"github.com/sawyerbutton/Cyber-Cat/internal/assets"
	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

func testViewState() ViewState {
	return ViewState{
		Name: "Sophie",
		State: pet.State{
			Energy:     70,
			Hunger:     35,
			Sleepiness: 20,
			Trust:      40,
			Emotion:    pet.EmotionCalm,
			Behavior:   "walk",
		},
		Cursor:    anim.Cursor{Behavior: pet.BehaviorWalk, Frame: 2},
		Connected: true,
	}
}

func TestSpriteViewRender(t *testing.T) {
	t.Parallel()

	sheet := assets.Load()
	view := NewSpriteView(sheet)

	cursor := anim.Cursor{Behavior: pet.BehaviorIdle, Frame: 0}
	lines := view.Render(cursor, 40)
	require.Len(t, lines, assets.CellHeight)
	assert.Contains(t, strings.Join(lines, "\n"), "/\\_/\\")
}

func TestSpriteViewRenderFlipped(t *testing.T) {
	t.Parallel()

	sheet := assets.Load()
	view := NewSpriteView(sheet)

	cursor := anim.Cursor{Behavior: pet.BehaviorWalk, Frame: 0}
	plain := view.Render(cursor, assets.CellWidth)
	cursor.Flipped = true
	flipped := view.Render(cursor, assets.CellWidth)

	require.Len(t, flipped, assets.CellHeight)
	assert.NotEqual(t, plain, flipped)
	// The walk frame faces right; flipped it faces left.
	assert.Contains(t, strings.Join(flipped, "\n"), ">(")
}

func TestStatusViewRender(t *testing.T) {
	t.Parallel()

	view := &StatusView{ShowGauges: true}
	lines := view.Render(testViewState(), 60)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "Sophie")
	assert.Contains(t, joined, pet.EmotionCalm)
	assert.Contains(t, joined, "walk")
	assert.Contains(t, joined, "energy")
	assert.Contains(t, joined, "hunger")

	view.ShowGauges = false
	lines = view.Render(testViewState(), 60)
	assert.NotContains(t, strings.Join(lines, "\n"), "energy")
}

func TestStatusViewOffline(t *testing.T) {
	t.Parallel()

	vs := testViewState()
	vs.Connected = false

	view := &StatusView{}
	lines := view.Render(vs, 60)
	assert.Contains(t, strings.Join(lines, "\n"), "offline")
}

func TestStatusViewSleeping(t *testing.T) {
	t.Parallel()

	vs := testViewState()
	vs.State.IsSleeping = true

	view := &StatusView{}
	lines := view.Render(vs, 60)
	assert.Contains(t, strings.Join(lines, "\n"), "sleeping")
}

func TestThoughtView(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ThoughtView("", 60))

	lines := ThoughtView("zoomies!", 60)
	require.NotEmpty(t, lines)
	assert.Contains(t, strings.Join(lines, "\n"), "zoomies!")
}

func TestThoughtViewWrapsLongText(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("wander ", 20)
	lines := ThoughtView(long, 60)
	// Box plus stem plus at least two wrapped lines.
	assert.Greater(t, len(lines), 4)
}

func TestEventLogView(t *testing.T) {
	t.Parallel()

	view := NewEventLogView(3)
	for _, line := range []string{"one", "two", "three", "four"} {
		view.Append(line)
	}

	// Oldest line evicted.
	assert.Equal(t, []string{"two", "three", "four"}, view.Lines())

	rendered := view.Render(40, 2)
	joined := strings.Join(rendered, "\n")
	assert.Contains(t, joined, "events")
	assert.Contains(t, joined, "four")
	assert.NotContains(t, joined, "two")
}

func TestTailViewShowsNewestLines(t *testing.T) {
	t.Parallel()

	lines := TailView("log", []string{"a", "b", "c"}, 40, 2)
	require.Len(t, lines, 3) // header + 2 lines
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "log")
	assert.Contains(t, joined, "b")
	assert.Contains(t, joined, "c")
	assert.NotContains(t, joined, "a")
}

func TestSpeakPromptView(t *testing.T) {
	t.Parallel()

	editor := NewLineEditor()
	for _, r := range "hi cat" {
		editor.HandleKey(KeyEvent{Key: KeyRune, Rune: r})
	}

	lines := SpeakPromptView(editor, 40)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "say: hi cat")
	assert.Contains(t, joined, "enter to send")
}

func TestSpeakPromptViewWindowsMultibyteInput(t *testing.T) {
	t.Parallel()

	editor := NewLineEditor()
	for _, r := range strings.Repeat("héllo ", 10) {
		editor.HandleKey(KeyEvent{Key: KeyRune, Rune: r})
	}

	// Narrow enough to force the scroll window over the rune buffer.
	lines := SpeakPromptView(editor, 24)
	for _, line := range lines {
		assert.True(t, utf8.ValidString(line), "window must not split a rune: %q", line)
	}

	// The cursor sits at the end, so the window shows the input's tail.
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "héllo ")
}

func TestHelpLine(t *testing.T) {
	t.Parallel()

	help := HelpLine(80)
	assert.Contains(t, help, "[p]et")
	assert.Contains(t, help, "[q]uit")
}
