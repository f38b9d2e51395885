// Package thought displays one ephemeral text bubble at a time. The latest
// message always wins; there is no queue.
package thought

import (
	"sync"
	"time"
)

// DefaultTTL is how long a thought stays visible before it clears.
const DefaultTTL = 4000 * time.Millisecond

// Presenter holds the currently visible thought and its clearing timer.
// A new Show replaces the text immediately and cancels the previous timer,
// so a stale clear can never erase newer content.
type Presenter struct {
	mu       sync.Mutex
	text     string
	gen      uint64
	ttl      time.Duration
	timer    *time.Timer
	onChange func()
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithTTL overrides the display duration. Useful for tests and
// development; the production default is DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(p *Presenter) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// WithOnChange registers a callback invoked after the visible text changes
// (both on Show and on expiry). The callback runs without the presenter
// lock held.
func WithOnChange(fn func()) Option {
	return func(p *Presenter) {
		p.onChange = fn
	}
}

// New creates a Presenter with no visible thought.
func New(opts ...Option) *Presenter {
	p := &Presenter{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Show makes text visible immediately and schedules it to clear after the
// TTL. Any previously scheduled clear is cancelled; only the most recent
// timer may take effect.
func (p *Presenter) Show(text string) {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.text = text
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(p.ttl, func() { p.expire(gen) })
	notify := p.onChange
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// expire clears the text if no newer Show superseded this timer.
func (p *Presenter) expire(gen uint64) {
	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return
	}
	p.text = ""
	p.timer = nil
	notify := p.onChange
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Current returns the visible thought text, or "" when none is shown.
func (p *Presenter) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text
}

// Stop cancels any pending clear timer and blanks the text. Idempotent;
// called on teardown.
func (p *Presenter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.text = ""
	p.gen++
}
