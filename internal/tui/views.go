package tui

import (
	"fmt"
	"strings"

	"github.com/sawyerbutton/Cyber-Cat/internal/anim"
	"github.com/sawyerbutton/Cyber-Cat/internal/assets"
	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

// ViewState holds everything a frame render needs.
type ViewState struct {
	Name      string
	State     pet.State
	Cursor    anim.Cursor
	Thought   string
	Connected bool
}

// SpriteView renders the animated sprite from the sheet.
type SpriteView struct {
	sheet *assets.Sheet
}

// NewSpriteView creates a SpriteView over the given sheet.
func NewSpriteView(sheet *assets.Sheet) *SpriteView {
	return &SpriteView{sheet: sheet}
}

// Render returns the sprite cell for the cursor, mirrored when the
// cursor is flipped, centered within the given width.
func (v *SpriteView) Render(cursor anim.Cursor, width int) []string {
	cell := v.sheet.Frame(cursor.Behavior, cursor.Frame)
	if cursor.Flipped {
		cell = MirrorCell(cell)
	}

	lines := make([]string, len(cell))
	for i, line := range cell {
		lines[i] = CenterText(line, width)
	}
	return lines
}

// StatusView renders the headline and the need gauges.
type StatusView struct {
	ShowGauges bool
}

// Render renders the status area.
func (v *StatusView) Render(state ViewState, width int) []string {
	if width < 24 {
		width = 24
	}

	var lines []string

	// Headline: "Sophie · Calm · walk"
	headline := fmt.Sprintf("%s · %s · %s",
		state.Name,
		FormatEmotion(state.State.Emotion),
		state.Cursor.Behavior)
	if state.State.IsSleeping {
		headline += " " + Style("(sleeping)", Dim)
	}
	if !state.Connected {
		headline += " " + Style("[offline]", FgRed, Bold)
	}
	lines = append(lines, headline)

	if !v.ShowGauges {
		return lines
	}

	lines = append(lines, "")
	gaugeWidth := width
	if gaugeWidth > 40 {
		gaugeWidth = 40
	}
	lines = append(lines,
		Gauge("energy", state.State.Energy, gaugeWidth),
		Gauge("hunger", state.State.Hunger, gaugeWidth),
		Gauge("sleepy", state.State.Sleepiness, gaugeWidth),
		Gauge("trust", state.State.Trust, gaugeWidth),
	)

	if state.State.MinutesSinceInteraction > 0 {
		lines = append(lines, Style(
			fmt.Sprintf("last interaction %dm ago", state.State.MinutesSinceInteraction), Dim))
	}

	return lines
}

// ThoughtView renders the thought bubble, or nothing when there is no
// active thought.
func ThoughtView(thought string, width int) []string {
	if thought == "" {
		return nil
	}

	bubbleWidth := width
	if bubbleWidth > 44 {
		bubbleWidth = 44
	}

	content := WrapText(thought, bubbleWidth-4)
	box := BoxWithContent(bubbleWidth, content)

	// Bubble stem pointing down at the sprite.
	box = append(box, strings.Repeat(" ", 4)+"o")
	box = append(box, strings.Repeat(" ", 5)+"º")
	return box
}

// EventLogView keeps a bounded buffer of recent happenings and renders
// the newest ones.
type EventLogView struct {
	lines    []string
	maxLines int
}

// NewEventLogView creates an EventLogView with the given buffer size.
func NewEventLogView(maxLines int) *EventLogView {
	if maxLines < 1 {
		maxLines = 200
	}
	return &EventLogView{
		lines:    make([]string, 0, maxLines),
		maxLines: maxLines,
	}
}

// Append adds a line to the log buffer.
func (v *EventLogView) Append(line string) {
	v.lines = append(v.lines, line)
	if len(v.lines) > v.maxLines {
		v.lines = v.lines[len(v.lines)-v.maxLines:]
	}
}

// Lines returns all buffered lines.
func (v *EventLogView) Lines() []string {
	return v.lines
}

// Render renders the newest height lines under a rule.
func (v *EventLogView) Render(width, height int) []string {
	return TailView("events", v.lines, width, height)
}

// TailView renders the newest height lines under a titled rule.
func TailView(title string, lines []string, width, height int) []string {
	if width < 20 {
		width = 20
	}
	if height < 1 {
		height = 1
	}

	result := make([]string, 0, height+1)
	header := Style("─── "+title+" ", Dim) + strings.Repeat("─", max(0, width-len(title)-5))
	result = append(result, header)

	start := 0
	if len(lines) > height {
		start = len(lines) - height
	}
	for _, line := range lines[start:] {
		result = append(result, Truncate(line, width))
	}
	return result
}

// SpeakPromptView renders the speak input line.
func SpeakPromptView(editor *LineEditor, width int) []string {
	if width < 20 {
		width = 20
	}
	innerWidth := width - 4

	prompt := "say: "
	maxInput := innerWidth - len(prompt)

	// The editor buffer and cursor are rune-based, so windowing slices
	// runes; slicing bytes would split multibyte input.
	text := []rune(editor.Text())
	cursor := editor.Cursor()

	// Scroll to keep the cursor visible in a long line.
	display := text
	cursorPos := cursor
	if len(text) > maxInput {
		start := 0
		if cursor > maxInput-3 {
			start = cursor - maxInput + 3
		}
		end := start + maxInput
		if end > len(text) {
			end = len(text)
		}
		display = text[start:end]
		cursorPos = cursor - start
	}

	content := []string{
		prompt + string(display),
		Style(strings.Repeat(" ", len(prompt)+cursorPos)+"^", FgCyan),
		Style("enter to send · esc to cancel", Dim),
	}
	return BoxWithContent(width, content)
}

// HelpLine renders the shortcut reminder.
func HelpLine(width int) string {
	return Style(Truncate("[p]et [f]eed [s]peak [t]log [g]auges [q]uit", width), Dim)
}

// max returns the larger of two integers.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
