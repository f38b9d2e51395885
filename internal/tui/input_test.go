package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAllKeys(t *testing.T, input string) []KeyEvent {
	t.Helper()

	reader := NewKeyReader(strings.NewReader(input))
	var events []KeyEvent
	for {
		ev, err := reader.ReadKey()
		if err != nil {
			return events
		}
		events = append(events, ev)
	}
}

func TestReadKeyBasic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  KeyEvent
	}{
		{"letter", "p", KeyEvent{Key: KeyRune, Rune: 'p'}},
		{"digit", "7", KeyEvent{Key: KeyRune, Rune: '7'}},
		{"enter", "\r", KeyEvent{Key: KeyEnter}},
		{"tab", "\t", KeyEvent{Key: KeyTab}},
		{"backspace DEL", "\x7f", KeyEvent{Key: KeyBackspace}},
		{"backspace BS", "\x08", KeyEvent{Key: KeyBackspace}},
		{"ctrl-c", "\x03", KeyEvent{Key: KeyCtrlC}},
		{"ctrl-d", "\x04", KeyEvent{Key: KeyCtrlD}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			events := readAllKeys(t, tt.input)
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0])
		})
	}
}

func TestReadKeyArrows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Key
	}{
		{"up", "\x1b[A", KeyUp},
		{"down", "\x1b[B", KeyDown},
		{"right", "\x1b[C", KeyRight},
		{"left", "\x1b[D", KeyLeft},
		{"ss3 up", "\x1bOA", KeyUp},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			events := readAllKeys(t, tt.input)
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0].Key)
		})
	}
}

func TestReadKeyUTF8(t *testing.T) {
	t.Parallel()

	events := readAllKeys(t, "é")
	require.Len(t, events, 1)
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'é'}, events[0])
}

func TestParseShortcut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   KeyEvent
		want Shortcut
	}{
		{"pet lower", KeyEvent{Key: KeyRune, Rune: 'p'}, ShortcutPet},
		{"pet upper", KeyEvent{Key: KeyRune, Rune: 'P'}, ShortcutPet},
		{"feed", KeyEvent{Key: KeyRune, Rune: 'f'}, ShortcutFeed},
		{"speak", KeyEvent{Key: KeyRune, Rune: 's'}, ShortcutSpeak},
		{"log", KeyEvent{Key: KeyRune, Rune: 't'}, ShortcutLog},
		{"gauges", KeyEvent{Key: KeyRune, Rune: 'g'}, ShortcutGauges},
		{"quit q", KeyEvent{Key: KeyRune, Rune: 'q'}, ShortcutQuit},
		{"quit ctrl-c", KeyEvent{Key: KeyCtrlC}, ShortcutQuit},
		{"escape", KeyEvent{Key: KeyEscape}, ShortcutEscape},
		{"unbound rune", KeyEvent{Key: KeyRune, Rune: 'x'}, ShortcutNone},
		{"arrow", KeyEvent{Key: KeyUp}, ShortcutNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseShortcut(tt.ev))
		})
	}
}

func TestLineEditor(t *testing.T) {
	t.Parallel()

	e := NewLineEditor()

	for _, r := range "helo" {
		assert.False(t, e.HandleKey(KeyEvent{Key: KeyRune, Rune: r}))
	}
	assert.Equal(t, "helo", e.Text())

	// Fix the typo: move left over 'o', insert 'l'.
	e.HandleKey(KeyEvent{Key: KeyLeft})
	e.HandleKey(KeyEvent{Key: KeyRune, Rune: 'l'})
	assert.Equal(t, "hello", e.Text())

	// Backspace removes before the cursor.
	e.HandleKey(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "helo", e.Text())

	// Enter completes the line.
	assert.True(t, e.HandleKey(KeyEvent{Key: KeyEnter}))

	e.Clear()
	assert.Equal(t, "", e.Text())
	assert.Equal(t, 0, e.Cursor())
}

func TestLineEditorCursorBounds(t *testing.T) {
	t.Parallel()

	e := NewLineEditor()
	e.HandleKey(KeyEvent{Key: KeyLeft})
	e.HandleKey(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, 0, e.Cursor())

	e.HandleKey(KeyEvent{Key: KeyRune, Rune: 'a'})
	e.HandleKey(KeyEvent{Key: KeyRight})
	assert.Equal(t, 1, e.Cursor())
}
