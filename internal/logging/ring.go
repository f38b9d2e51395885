package logging

import "sync"

// Ring is a bounded in-memory buffer of recent log lines. The TUI reads
// it to populate the event-log view without touching the log file.
type Ring struct {
	mu    sync.Mutex
	lines []string
	max   int
}

// NewRing creates a Ring that retains at most max lines.
func NewRing(max int) *Ring {
	if max < 1 {
		max = 256
	}
	return &Ring{
		lines: make([]string, 0, max),
		max:   max,
	}
}

// Append adds a line, evicting the oldest when the ring is full.
func (r *Ring) Append(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines = append(r.lines, line)
	if len(r.lines) > r.max {
		r.lines = r.lines[len(r.lines)-r.max:]
	}
}

// Lines returns a copy of the retained lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Len returns the number of retained lines.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}
