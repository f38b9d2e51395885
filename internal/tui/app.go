package tui

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sawyerbutton/Cyber-Cat/internal/anim"
	"github.com/sawyerbutton/Cyber-Cat/internal/assets"
	"github.com/sawyerbutton/Cyber-Cat/internal/bridge"
	"github.com/sawyerbutton/Cyber-Cat/internal/logging"
	"github.com/sawyerbutton/Cyber-Cat/internal/thought"
)

// commandTimeout bounds a single user command round trip so a hung
// backend never wedges the input loop.
const commandTimeout = 10 * time.Second

// App is the interactive companion view: it owns the terminal, advances
// the animation on clock ticks, and turns keystrokes into bridge commands.
type App struct {
	terminal *Terminal
	machine  *anim.Machine
	thoughts *thought.Presenter
	bridge   *bridge.Bridge

	sprite   *SpriteView
	status   *StatusView
	eventLog *EventLogView
	logRing  *logging.Ring

	name string

	mu       sync.Mutex
	showLog  bool
	speaking bool
	editor   *LineEditor
	width    int
	height   int

	dirty chan struct{}
}

// AppOptions collects the App's collaborators and presentation settings.
type AppOptions struct {
	Name       string
	ShowGauges bool
	Sheet      *assets.Sheet
	Machine    *anim.Machine
	Thoughts   *thought.Presenter
	Bridge     *bridge.Bridge
	// LogRing, when set, appears below the event log so log output is
	// visible without leaving the alternate screen.
	LogRing *logging.Ring
}

// NewApp creates the TUI over the given collaborators.
func NewApp(out io.Writer, opts AppOptions) *App {
	return &App{
		terminal: NewTerminal(out),
		machine:  opts.Machine,
		thoughts: opts.Thoughts,
		bridge:   opts.Bridge,
		sprite:   NewSpriteView(opts.Sheet),
		status:   &StatusView{ShowGauges: opts.ShowGauges},
		eventLog: NewEventLogView(200),
		logRing:  opts.LogRing,
		name:     opts.Name,
		editor:   NewLineEditor(),
		width:    80,
		height:   24,
		dirty:    make(chan struct{}, 1),
	}
}

// Invalidate requests a redraw. Safe from any goroutine; coalesces.
func (a *App) Invalidate() {
	select {
	case a.dirty <- struct{}{}:
	default:
	}
}

// Note records a line in the event log and requests a redraw. It is the
// bridge's event sink.
func (a *App) Note(kind, detail string) {
	a.mu.Lock()
	if detail == "" {
		a.eventLog.Append(kind)
	} else {
		a.eventLog.Append(kind + ": " + detail)
	}
	a.mu.Unlock()
	a.Invalidate()
}

// Run drives the UI until the context is cancelled or the user quits.
// The caller owns starting and stopping the bridge subscription.
func (a *App) Run(ctx context.Context) error {
	if err := a.terminal.EnterRaw(); err != nil {
		return err
	}
	defer a.terminal.ExitRaw()

	a.terminal.EnterAltScreen()
	a.terminal.HideCursor()
	defer func() {
		a.terminal.ShowCursor()
		a.terminal.ExitAltScreen()
	}()

	a.machine.Start()
	defer a.machine.Stop()

	keyCh := make(chan KeyEvent, 10)
	keyErr := make(chan error, 1)
	go func() {
		reader := NewKeyReader(a.terminal)
		for {
			ev, err := reader.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keyCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.redraw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-keyErr:
			if err == io.EOF {
				return nil
			}
			return err

		case <-a.machine.Ticks():
			a.machine.Advance()
			a.redraw()

		case <-a.dirty:
			a.redraw()

		case ev := <-keyCh:
			if quit := a.handleKey(ctx, ev); quit {
				return nil
			}
			a.redraw()
		}
	}
}

// handleKey processes one keystroke. Returns true when the user quit.
func (a *App) handleKey(ctx context.Context, ev KeyEvent) bool {
	a.mu.Lock()
	speaking := a.speaking
	a.mu.Unlock()

	if speaking {
		a.handleSpeakKey(ctx, ev)
		return false
	}

	switch ParseShortcut(ev) {
	case ShortcutQuit:
		return true

	case ShortcutPet:
		a.runCommand(ctx, a.bridge.Click)

	case ShortcutFeed:
		a.runCommand(ctx, a.bridge.Feed)

	case ShortcutSpeak:
		a.mu.Lock()
		a.speaking = true
		a.editor.Clear()
		a.mu.Unlock()

	case ShortcutLog:
		a.mu.Lock()
		a.showLog = !a.showLog
		a.mu.Unlock()

	case ShortcutGauges:
		a.mu.Lock()
		a.status.ShowGauges = !a.status.ShowGauges
		a.mu.Unlock()
	}
	return false
}

// handleSpeakKey routes keystrokes into the speak prompt.
func (a *App) handleSpeakKey(ctx context.Context, ev KeyEvent) {
	if ev.Key == KeyEscape || ev.Key == KeyCtrlC {
		a.mu.Lock()
		a.speaking = false
		a.editor.Clear()
		a.mu.Unlock()
		return
	}

	a.mu.Lock()
	done := a.editor.HandleKey(ev)
	var message string
	if done {
		message = a.editor.Text()
		a.speaking = false
		a.editor.Clear()
	}
	a.mu.Unlock()

	if done && message != "" {
		a.runCommand(ctx, func(cmdCtx context.Context) {
			a.bridge.Speak(cmdCtx, message)
		})
	}
}

// runCommand issues a bridge command off the input loop so a slow
// backend never freezes rendering. The bridge already degrades failures
// to a local animation.
func (a *App) runCommand(ctx context.Context, call func(context.Context)) {
	go func() {
		cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		call(cmdCtx)
		a.Invalidate()
	}()
}

// viewState gathers the current frame's data.
func (a *App) viewState() ViewState {
	vs := ViewState{
		Name:   a.name,
		Cursor: a.machine.Cursor(),
	}
	if latest := a.bridge.Latest(); latest != nil {
		vs.State = *latest
		vs.Connected = true
	}
	if a.thoughts != nil {
		vs.Thought = a.thoughts.Current()
	}
	return vs
}

// redraw repaints the whole frame.
func (a *App) redraw() {
	if w, h, err := a.terminal.Size(); err == nil {
		a.mu.Lock()
		a.width, a.height = w, h
		a.mu.Unlock()
	}

	a.mu.Lock()
	width := a.width
	height := a.height
	showLog := a.showLog
	speaking := a.speaking
	a.mu.Unlock()

	vs := a.viewState()

	var lines []string
	lines = append(lines, a.status.Render(vs, width)...)
	lines = append(lines, "")
	lines = append(lines, ThoughtView(vs.Thought, width)...)
	lines = append(lines, a.sprite.Render(vs.Cursor, min(width, 40))...)
	lines = append(lines, "")

	if speaking {
		a.mu.Lock()
		lines = append(lines, SpeakPromptView(a.editor, min(width, 52))...)
		a.mu.Unlock()
	} else {
		lines = append(lines, HelpLine(width))
	}

	if showLog {
		logHeight := height - len(lines) - 2
		if logHeight < 3 {
			logHeight = 3
		}
		if a.logRing != nil && a.logRing.Len() > 0 {
			eventHeight := logHeight / 2
			if eventHeight < 2 {
				eventHeight = 2
			}
			a.mu.Lock()
			lines = append(lines, a.eventLog.Render(width, eventHeight)...)
			a.mu.Unlock()
			lines = append(lines, TailView("log", a.logRing.Lines(), width, logHeight-eventHeight)...)
		} else {
			a.mu.Lock()
			lines = append(lines, a.eventLog.Render(width, logHeight)...)
			a.mu.Unlock()
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}

	a.terminal.Clear()
	for _, line := range lines {
		a.terminal.WriteLine(line)
	}
}

// Bell sounds the terminal bell. Used when a thought arrives while the
// terminal may be in the background.
func (a *App) Bell() {
	a.terminal.RingBell()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
