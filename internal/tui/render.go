package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sawyerbutton/Cyber-Cat/internal/pet"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// BoxWithContent draws a box containing the given content lines.
// Each line is padded/truncated to fit within the box.
func BoxWithContent(width int, content []string) []string {
	if width < 4 {
		return nil
	}

	innerWidth := width - 4 // Account for borders and padding
	height := len(content) + 2

	lines := make([]string, height)

	// Top border
	lines[0] = BoxTopLeft + strings.Repeat(BoxHorizontal, width-2) + BoxTopRight

	// Content rows
	for i, line := range content {
		lines[i+1] = BoxVertical + " " + PadOrTruncate(line, innerWidth) + " " + BoxVertical
	}

	// Bottom border
	lines[height-1] = BoxBottomLeft + strings.Repeat(BoxHorizontal, width-2) + BoxBottomRight

	return lines
}

// PadOrTruncate pads or truncates a string to exactly width characters.
// Uses visual width (rune count) for proper Unicode handling.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runeLen := utf8.RuneCountInString(s)

	if runeLen == width {
		return s
	}

	if runeLen < width {
		return s + strings.Repeat(" ", width-runeLen)
	}

	// Truncate, preserving rune boundaries
	runes := []rune(s)
	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// Truncate truncates a string to max width, adding ellipsis if needed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// WrapText wraps text to fit within the given width.
// Returns a slice of lines.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	words := strings.Fields(text)

	if len(words) == 0 {
		return lines
	}

	currentLine := words[0]

	for _, word := range words[1:] {
		if utf8.RuneCountInString(currentLine)+1+utf8.RuneCountInString(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

// CenterText centers text within the given width.
func CenterText(s string, width int) string {
	runeLen := utf8.RuneCountInString(s)
	if runeLen >= width {
		return PadOrTruncate(s, width)
	}

	leftPad := (width - runeLen) / 2
	rightPad := width - runeLen - leftPad

	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
}

// Gauge renders a labeled meter for a 0-100 value.
// Returns a string like "energy  [████████░░░░░░░░]  72".
func Gauge(label string, value float64, width int) string {
	if width < 16 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	labelField := PadOrTruncate(label, 8)

	// Space for "label [bar] 100"
	barWidth := width - len(labelField) - 8
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(value / 100 * float64(barWidth))

	bar := "[" +
		strings.Repeat("█", filled) +
		strings.Repeat("░", barWidth-filled) +
		"]"

	return fmt.Sprintf("%s %s %3.0f", labelField, bar, value)
}

// mirrorRunes maps direction-carrying characters to their horizontal
// reflections for the flipped sprite.
var mirrorRunes = map[rune]rune{
	'(': ')', ')': '(',
	'<': '>', '>': '<',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'/': '\\', '\\': '/',
}

// MirrorLine reverses a line horizontally, swapping direction-carrying
// characters so the art still reads correctly.
func MirrorLine(s string) string {
	runes := []rune(s)
	out := make([]rune, len(runes))
	for i, r := range runes {
		if m, ok := mirrorRunes[r]; ok {
			r = m
		}
		out[len(runes)-1-i] = r
	}
	return string(out)
}

// MirrorCell mirrors every line of a sprite cell.
func MirrorCell(cell []string) []string {
	out := make([]string, len(cell))
	for i, line := range cell {
		out[i] = MirrorLine(line)
	}
	return out
}

// Style applies ANSI style codes to text.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// EmotionColor returns a color code for the given emotion label.
func EmotionColor(emotion string) string {
	switch emotion {
	case pet.EmotionHappy, pet.EmotionPlayful:
		return FgGreen
	case pet.EmotionCurious:
		return FgCyan
	case pet.EmotionBored:
		return FgBrightBlack
	case pet.EmotionIrritated:
		return FgRed
	case pet.EmotionDown:
		return FgBlue
	case pet.EmotionCalm:
		return FgWhite
	default:
		return ""
	}
}

// FormatEmotion formats an emotion label with its color.
func FormatEmotion(emotion string) string {
	color := EmotionColor(emotion)
	if color == "" {
		return emotion
	}
	return Style(emotion, color, Bold)
}
