package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestANSIEscapeConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		constant string
		want     string
	}{
		{"ClearScreen", ClearScreen, "\033[2J"},
		{"ClearLine", ClearLine, "\033[K"},
		{"CursorHome", CursorHome, "\033[H"},
		{"CursorHide", CursorHide, "\033[?25l"},
		{"CursorShow", CursorShow, "\033[?25h"},
		{"AltScreen", AltScreen, "\033[?1049h"},
		{"MainScreen", MainScreen, "\033[?1049l"},
		{"Reset", Reset, "\033[0m"},
		{"Bold", Bold, "\033[1m"},
		{"Dim", Dim, "\033[2m"},
		{"FgRed", FgRed, "\033[31m"},
		{"FgGreen", FgGreen, "\033[32m"},
		{"FgCyan", FgCyan, "\033[36m"},
		{"FgBrightBlack", FgBrightBlack, "\033[90m"},
		{"Bell", Bell, "\a"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.constant)
		})
	}
}

func TestCursorTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		row, col int
		want     string
	}{
		{"origin", 1, 1, "\033[1;1H"},
		{"row 5 col 10", 5, 10, "\033[5;10H"},
		{"large values", 100, 200, "\033[100;200H"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CursorTo(tt.row, tt.col))
		})
	}
}

func TestTerminalWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Write("hello")
	assert.Equal(t, "hello", buf.String())
}

func TestTerminalWriteLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	// Raw mode needs an explicit carriage return.
	term.WriteLine("hello")
	assert.Equal(t, "hello\r\n", buf.String())
}

func TestTerminalClear(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Clear()
	assert.Equal(t, ClearScreen+CursorHome, buf.String())
}

func TestTerminalAltScreen(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.EnterAltScreen()
	term.ExitAltScreen()
	assert.Equal(t, AltScreen+MainScreen, buf.String())
}

func TestTerminalCursorVisibility(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.HideCursor()
	term.ShowCursor()
	assert.Equal(t, CursorHide+CursorShow, buf.String())
}

func TestTerminalMoveTo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.MoveTo(3, 5)
	assert.Equal(t, "\033[3;5H", buf.String())
}

func TestTerminalIsRaw(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	term := NewTerminal(&buf)

	assert.False(t, term.IsRaw())
}
